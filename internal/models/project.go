package models

// Project represents a portfolio project shown in the work timeline
type Project struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Images      []string `yaml:"images" json:"images"`
	TechStack   []string `yaml:"tech_stack" json:"tech_stack"`
	LiveURL     string   `yaml:"live_url,omitempty" json:"live_url,omitempty"`
	GitHubURL   string   `yaml:"github_url,omitempty" json:"github_url,omitempty"`
}

// HasLiveURL reports whether the project has a live demo link.
// A missing key and an empty value are both treated as absent.
func (p Project) HasLiveURL() bool {
	return p.LiveURL != ""
}

// HasGitHubURL reports whether the project has a source code link.
func (p Project) HasGitHubURL() bool {
	return p.GitHubURL != ""
}

// Cover returns the first image, used as the gallery thumbnail
func (p Project) Cover() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
