// Package gallery renders the clickable project thumbnails of the work
// timeline and routes activations to a caller-supplied callback.
package gallery

import "github.com/Zachkp/work-timeline/internal/models"

// Lookup resolves a project key
type Lookup func(key string) (models.Project, bool)

// Thumbnail is what a grid cell shows for a project
type Thumbnail struct {
	Key   string
	Title string
	Image string
}

// Cell is a renderable grid cell. Exactly one of Thumbnail and Image is set.
type Cell struct {
	Thumbnail *Thumbnail
	Image     string
	Alt       string
}

// Gallery holds no selection state of its own
type Gallery struct {
	lookup Lookup
}

// New creates a Gallery resolving keys with lookup
func New(lookup Lookup) *Gallery {
	return &Gallery{lookup: lookup}
}

// Render returns the thumbnail for key, or false if the key is unknown
func (g *Gallery) Render(key string) (Thumbnail, bool) {
	p, ok := g.lookup(key)
	if !ok {
		return Thumbnail{}, false
	}
	return Thumbnail{Key: key, Title: p.Title, Image: p.Cover()}, true
}

// Select resolves key and hands the project to onSelect once.
// Unknown keys are ignored and reported as false.
func (g *Gallery) Select(key string, onSelect func(models.Project)) bool {
	p, ok := g.lookup(key)
	if !ok {
		return false
	}
	onSelect(p)
	return true
}

// Cells returns the renderable cells of an experience in order.
// Project cells with unknown keys are dropped.
func (g *Gallery) Cells(e models.Experience) []Cell {
	cells := make([]Cell, 0, len(e.Cells))
	for _, c := range e.Cells {
		if !c.IsProject() {
			cells = append(cells, Cell{Image: c.Image, Alt: c.Alt})
			continue
		}
		if t, ok := g.Render(c.Project); ok {
			cells = append(cells, Cell{Thumbnail: &t})
		}
	}
	return cells
}
