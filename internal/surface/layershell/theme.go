package layershell

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/toastd/toastd/internal/config"
)

// embeddedCSS contains the bundled stylesheet.
//
//go:embed themes/default.css
var embeddedCSS embed.FS

// ApplyTheme loads the bundled stylesheet, appends the user stylesheet
// when one is configured, and installs the provider on the default
// display. Must run on the GTK main loop after activation.
func ApplyTheme(cfg *config.Config) error {
	data, err := embeddedCSS.ReadFile("themes/default.css")
	if err != nil {
		return fmt.Errorf("reading bundled stylesheet: %w", err)
	}
	css := processCSS(string(data), cfg)

	if path := cfg.Theme.Stylesheet; path != "" {
		user, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading user stylesheet: %w", err)
		}
		// User rules append after the bundled ones and win on equal
		// specificity.
		css += "\n" + string(user)
	}

	display := gdk.DisplayGetDefault()
	if display == nil {
		return fmt.Errorf("no display available")
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(css)
	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	return nil
}

// processCSS substitutes configured values into the bundled
// stylesheet.
func processCSS(css string, cfg *config.Config) string {
	replacer := strings.NewReplacer(
		"@transition@", fmt.Sprintf("%dms", cfg.Display.Transition.Duration().Milliseconds()),
		"@width@", fmt.Sprintf("%dpx", cfg.Display.Width),
	)
	return replacer.Replace(css)
}
