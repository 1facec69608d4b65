package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sample = `
experiences:
  - period: Nov 2024 - Present
    role: Laravel Developer
    company: Virico
    summary: Laravel | React
    cells:
      - project: tyga_smart
      - project: missing
      - image: https://assets.example.com/bento.png
        alt: bento template
projects:
  tyga_smart:
    title: TygaSmart Dashboard
    description: Smart home dashboard.
    images: [tyga.png, tyga-2.png]
    tech_stack: [Laravel, Vue.js, Laravel]
    live_url: https://tyga.example.com
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(c.Experiences) != 1 {
		t.Fatalf("expected 1 experience, got %d", len(c.Experiences))
	}
	if got := len(c.Experiences[0].Cells); got != 3 {
		t.Errorf("expected 3 cells, got %d", got)
	}

	p, ok := c.Project("tyga_smart")
	if !ok {
		t.Fatal("tyga_smart not found")
	}
	if p.ID != "tyga_smart" {
		t.Errorf("expected id filled from key, got %q", p.ID)
	}
	if len(p.TechStack) != 3 || p.TechStack[2] != "Laravel" {
		t.Errorf("tech stack not preserved in order: %v", p.TechStack)
	}
	if p.HasGitHubURL() {
		t.Error("omitted github_url should be absent")
	}
}

func TestParseRejectsInvalidProjects(t *testing.T) {
	testCases := map[string]string{
		"no images": `
projects:
  a:
    title: A
    images: []
`,
		"id mismatch": `
projects:
  a:
    id: b
    title: A
    images: [a.png]
`,
		"no title": `
projects:
  a:
    images: [a.png]
`,
		"empty cell": `
experiences:
  - period: 2020
    cells:
      - alt: nothing here
`,
	}

	for name, data := range testCases {
		_, err := Parse([]byte(data))
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("projects: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.Projects) != 1 {
		t.Errorf("expected 1 project, got %d", len(c.Projects))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSourceReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSource(c, path)

	updated := sample + `
  spendsail:
    title: SpendSail
    images: [spendsail.png]
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if _, ok := s.Lookup("spendsail"); !ok {
		t.Error("expected spendsail after reload")
	}

	// A broken file keeps the previous catalog.
	if err := os.WriteFile(path, []byte("projects:\n  x:\n    title: X\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err == nil {
		t.Error("expected reload error for invalid data")
	}
	if _, ok := s.Lookup("spendsail"); !ok {
		t.Error("previous catalog should survive a failed reload")
	}
}

func TestSourceWithoutPath(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	s := NewSource(c, "")

	if err := s.Reload(); err != nil {
		t.Errorf("Reload without path should be a no-op, got %v", err)
	}
	if s.Current() != c {
		t.Error("Current should return the supplied catalog")
	}
}
