// Package viewer implements the project modal: an image carousel plus the
// project's description, tech stack and links.
//
// The viewer never changes who is selected. It is handed the selected
// project and the open flag, and it asks its owner to close through the
// onClose callback.
package viewer

import "github.com/Zachkp/work-timeline/internal/models"

// State is the top-level modal state
type State string

const (
	Closed State = "CLOSED"
	Open   State = "OPEN"
)

// Viewer is one mounted modal instance. It owns only the carousel position.
type Viewer struct {
	state    State
	shown    string
	carousel Carousel
	onClose  func()
}

// New creates a closed Viewer that calls onClose when dismissed
func New(onClose func()) *Viewer {
	return &Viewer{state: Closed, onClose: onClose}
}

// Render syncs the viewer with its inputs and returns the modal to show,
// or nil when nothing should be rendered.
//
// A nil project renders nothing whatever open says. The carousel restarts at
// the first image on every Closed to Open transition and whenever a
// different project (or a reloaded one with another image count) is shown.
func (v *Viewer) Render(p *models.Project, open bool) *Modal {
	if p == nil || !open {
		v.state = Closed
		return nil
	}

	if v.state == Closed || v.shown != p.ID || v.carousel.Len() != len(p.Images) {
		v.carousel = NewCarousel(len(p.Images))
		v.shown = p.ID
	}
	v.state = Open

	return Build(*p, v.carousel)
}

// Reset closes the viewer and forgets the carousel position, so the next
// open starts at the first image even without an intervening Render.
func (v *Viewer) Reset() {
	v.state = Closed
	v.shown = ""
	v.carousel = Carousel{}
}

// State returns the state from the last Render
func (v *Viewer) State() State { return v.state }

// Index returns the current carousel index
func (v *Viewer) Index() int { return v.carousel.Index() }

// Next advances the carousel, wrapping to the first image. No-op while closed.
func (v *Viewer) Next() {
	if v.state == Open {
		v.carousel.Next()
	}
}

// Prev steps the carousel back, wrapping to the last image. No-op while closed.
func (v *Viewer) Prev() {
	if v.state == Open {
		v.carousel.Prev()
	}
}

// Show selects image k directly
func (v *Viewer) Show(k int) error {
	if v.state != Open {
		return nil
	}
	return v.carousel.Select(k)
}

// Dismiss requests closure from the owner. Backdrop clicks and the close
// button both end up here.
func (v *Viewer) Dismiss() {
	if v.onClose != nil {
		v.onClose()
	}
}
