// Package surface defines the capabilities a rendering backend provides
// to the toast lifecycle: container creation, element transitions, and
// frame/timer scheduling. The lifecycle depends only on these
// interfaces, never on a backend's internals.
package surface

import (
	"time"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/notice"
)

// Surface creates positioned containers on a visual surface.
type Surface interface {
	// CreateContainer allocates a container anchored to the given
	// screen position: fixed placement, transparent to pointer events,
	// stacked above ordinary content, toasts laid out in a single-axis
	// stack with a fixed gap.
	CreateContainer(pos config.Position) (Container, error)
}

// Container is a positioned visual region holding zero or more toasts
// in insertion order; the newest toast is visually last.
type Container interface {
	// Insert renders the notice at the end of the stack, invisible and
	// displaced to its initial offset, and returns its element handle.
	Insert(n *notice.Notice) Element

	// Remove detaches the element from the container.
	Remove(el Element)

	// Count reports the number of elements currently in the container.
	Count() int

	// Detach removes the container from the surface. Only the registry
	// calls this, and only once the container is empty.
	Detach()
}

// Element is one rendered toast inside a container.
type Element interface {
	// Reveal clears the initial offset and makes the element fully
	// visible, triggering the entry transition.
	Reveal()

	// Conceal restores the initial offset and hides the element,
	// triggering the exit transition.
	Conceal()

	// OnSettled registers a one-shot listener for the completion of
	// the transition started by the next Conceal. The listener is
	// detached after firing.
	OnSettled(fn func())
}

// Scheduler provides the frame and timer deferrals the lifecycle
// suspends on.
type Scheduler interface {
	// NextFrame runs fn at the next render-pass boundary.
	NextFrame(fn func())

	// After runs fn once d has elapsed.
	After(d time.Duration, fn func())
}
