// Package container owns the work section's selection state and wires the
// gallery's selections into the project viewer.
package container

import (
	"github.com/Zachkp/work-timeline/internal/gallery"
	"github.com/Zachkp/work-timeline/internal/models"
	"github.com/Zachkp/work-timeline/internal/viewer"
)

// Selection is a read-only snapshot of the selection state
type Selection struct {
	Project *models.Project
	Open    bool
}

// Container is the single writer of the selected project and open flag.
// Gallery and viewer only reach it through the callbacks it hands them.
type Container struct {
	gallery  *gallery.Gallery
	viewer   *viewer.Viewer
	selected *models.Project
	open     bool
}

// New creates a Container with a closed modal
func New(g *gallery.Gallery) *Container {
	c := &Container{gallery: g}
	c.viewer = viewer.New(c.Close)
	return c
}

// Select shows p in the modal
func (c *Container) Select(p models.Project) {
	c.selected = &p
	c.open = true
}

// Close hides the modal and forgets the selection
func (c *Container) Close() {
	c.open = false
	c.selected = nil
	c.viewer.Reset()
}

// Selection returns a copy of the current state
func (c *Container) Selection() Selection {
	s := Selection{Open: c.open}
	if c.selected != nil {
		p := *c.selected
		s.Project = &p
	}
	return s
}

// SelectKey routes a thumbnail activation through the gallery.
// It reports false, and changes nothing, for unknown keys.
func (c *Container) SelectKey(key string) bool {
	return c.gallery.Select(key, c.Select)
}

// Modal renders the viewer from the current selection
func (c *Container) Modal() *viewer.Modal {
	s := c.Selection()
	return c.viewer.Render(s.Project, s.Open)
}

// Next and Prev step the carousel of the open project
func (c *Container) Next() {
	if c.open {
		c.viewer.Next()
	}
}

func (c *Container) Prev() {
	if c.open {
		c.viewer.Prev()
	}
}

// Show selects image k of the open project
func (c *Container) Show(k int) error {
	if !c.open {
		return nil
	}
	return c.viewer.Show(k)
}

// Dismiss is the close button and backdrop path; the viewer calls back into Close.
func (c *Container) Dismiss() { c.viewer.Dismiss() }
