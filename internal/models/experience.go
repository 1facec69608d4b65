package models

// Cell is one slot in an experience's thumbnail grid. It either names a
// project by key or carries a plain decorative image.
type Cell struct {
	Project string `yaml:"project,omitempty" json:"project,omitempty"`
	Image   string `yaml:"image,omitempty" json:"image,omitempty"`
	Alt     string `yaml:"alt,omitempty" json:"alt,omitempty"`
}

// IsProject reports whether the cell refers to a project
func (c Cell) IsProject() bool {
	return c.Project != ""
}

// Experience is a single entry on the work timeline
type Experience struct {
	Period  string `yaml:"period" json:"period"`
	Role    string `yaml:"role" json:"role"`
	Company string `yaml:"company" json:"company"`
	Summary string `yaml:"summary" json:"summary"`
	Cells   []Cell `yaml:"cells" json:"cells"`
}

// Catalog holds the full work history and the projects it references
type Catalog struct {
	Experiences []Experience       `yaml:"experiences" json:"experiences"`
	Projects    map[string]Project `yaml:"projects" json:"projects"`
}

// Project looks up a project by its key
func (c *Catalog) Project(key string) (Project, bool) {
	if c == nil {
		return Project{}, false
	}
	p, ok := c.Projects[key]
	return p, ok
}
