package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/Zachkp/work-timeline/internal/models"
)

// ErrInvalid is returned when work data fails validation
var ErrInvalid = errors.New("invalid work data")

// Load reads and validates a work data file
func Load(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read work data: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates work data from YAML
func Parse(data []byte) (*models.Catalog, error) {
	var c models.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse work data: %w", err)
	}

	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks project records and fills in ids from their keys.
//
// Every project needs at least one image, since the viewer always opens on
// the first one. Cells naming unknown projects are allowed; the gallery
// skips them.
func Validate(c *models.Catalog) error {
	seen := make(map[string]string, len(c.Projects))

	for key, p := range c.Projects {
		if p.ID == "" {
			p.ID = key
		}
		if p.ID != key {
			return fmt.Errorf("%w: project key %q has id %q", ErrInvalid, key, p.ID)
		}
		if prev, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: project id %q used by %q and %q", ErrInvalid, p.ID, prev, key)
		}
		seen[p.ID] = key

		if p.Title == "" {
			return fmt.Errorf("%w: project %q has no title", ErrInvalid, key)
		}
		if len(p.Images) == 0 {
			return fmt.Errorf("%w: project %q has no images", ErrInvalid, key)
		}
		c.Projects[key] = p
	}

	for i, e := range c.Experiences {
		for j, cell := range e.Cells {
			if !cell.IsProject() && cell.Image == "" {
				return fmt.Errorf("%w: experience %d cell %d has neither project nor image", ErrInvalid, i, j)
			}
		}
	}

	return nil
}
