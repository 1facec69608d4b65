package viewer

import (
	"fmt"

	"github.com/Zachkp/work-timeline/internal/models"
)

const (
	LiveDemoLabel   = "Live Demo"
	SourceCodeLabel = "Source Code"
	ComingSoonText  = "Links coming soon..."
)

// Dot is one carousel indicator
type Dot struct {
	Index  int
	Number int
	Active bool
}

// Link is an external action link, opened in a new browsing context
type Link struct {
	Label string
	URL   string
	Kind  string // "live" or "source"
}

// Modal is everything the modal template needs for one project at one image
type Modal struct {
	ProjectID   string
	Title       string
	Description string

	Image   string
	Alt     string
	Index   int
	Count   int
	Counter string
	ShowNav bool
	Dots    []Dot

	Tags       []string
	Links      []Link
	ComingSoon bool
}

// ImageAlt is the accessible label of image i (0-based) of a project
func ImageAlt(title string, i int) string {
	return fmt.Sprintf("%s - Image %d", title, i+1)
}

// Build assembles the modal for p with the carousel at c
func Build(p models.Project, c Carousel) *Modal {
	m := &Modal{
		ProjectID:   p.ID,
		Title:       p.Title,
		Description: p.Description,
		Index:       c.Index(),
		Count:       c.Len(),
		ShowNav:     c.HasMultiple(),
		Tags:        append([]string(nil), p.TechStack...),
	}

	if c.Index() < len(p.Images) {
		m.Image = p.Images[c.Index()]
	}
	m.Alt = ImageAlt(p.Title, c.Index())

	if m.ShowNav {
		m.Counter = c.Counter()
		m.Dots = make([]Dot, c.Len())
		for i := range m.Dots {
			m.Dots[i] = Dot{Index: i, Number: i + 1, Active: i == c.Index()}
		}
	}

	m.Links = Links(p)
	m.ComingSoon = len(m.Links) == 0

	return m
}

// Links returns the action links of p in display order
func Links(p models.Project) []Link {
	var links []Link
	if p.HasLiveURL() {
		links = append(links, Link{Label: LiveDemoLabel, URL: p.LiveURL, Kind: "live"})
	}
	if p.HasGitHubURL() {
		links = append(links, Link{Label: SourceCodeLabel, URL: p.GitHubURL, Kind: "source"})
	}
	return links
}
