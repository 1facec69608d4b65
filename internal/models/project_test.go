package models

import "testing"

func TestProjectLinkPresence(t *testing.T) {
	testCases := []struct {
		name      string
		live      string
		github    string
		hasLive   bool
		hasGitHub bool
	}{
		{"both", "https://a", "https://b", true, true},
		{"live only", "https://a", "", true, false},
		{"github only", "", "https://b", false, true},
		{"neither", "", "", false, false},
		{"blank is still a non-empty link", "   ", "\t", true, true},
	}

	for _, tc := range testCases {
		p := Project{LiveURL: tc.live, GitHubURL: tc.github}
		if got := p.HasLiveURL(); got != tc.hasLive {
			t.Errorf("%s: HasLiveURL() = %v, want %v", tc.name, got, tc.hasLive)
		}
		if got := p.HasGitHubURL(); got != tc.hasGitHub {
			t.Errorf("%s: HasGitHubURL() = %v, want %v", tc.name, got, tc.hasGitHub)
		}
	}
}

func TestProjectCover(t *testing.T) {
	p := Project{Images: []string{"first.png", "second.png"}}
	if got := p.Cover(); got != "first.png" {
		t.Errorf("Cover() = %q, want first.png", got)
	}

	if got := (Project{}).Cover(); got != "" {
		t.Errorf("Cover() on empty project = %q, want empty", got)
	}
}

func TestCatalogProjectLookup(t *testing.T) {
	c := &Catalog{Projects: map[string]Project{"a": {ID: "a"}}}

	if _, ok := c.Project("a"); !ok {
		t.Error("expected project a to be found")
	}
	if _, ok := c.Project("missing"); ok {
		t.Error("expected lookup miss for unknown key")
	}

	var nilCatalog *Catalog
	if _, ok := nilCatalog.Project("a"); ok {
		t.Error("nil catalog should never resolve a key")
	}
}
