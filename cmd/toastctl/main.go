// Package main provides the CLI entrypoint for toastctl.
package main

func main() {
	Execute()
}
