package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRenderSite(t *testing.T) {
	assets := filepath.Join(t.TempDir(), "static")
	if err := os.MkdirAll(assets, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assets, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	opts := renderOpts{
		OutDir:    out,
		AssetDirs: []string{assets, filepath.Join(t.TempDir(), "missing")},
	}
	if err := renderSite(testCatalog(t), opts); err != nil {
		t.Fatalf("renderSite: %v", err)
	}

	index := readFile(t, filepath.Join(out, "index.html"))
	for _, want := range []string{
		`href="static/style.css"`,
		`href="projects/multi/1.html"`,
		`src="images/m1.png"`,
		"Acme Corp",
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index.html missing %q", want)
		}
	}
	if strings.Contains(index, "hx-post") || strings.Contains(index, "htmx") {
		t.Error("static export should not depend on htmx")
	}
	if strings.Contains(index, "modal-backdrop") {
		t.Error("index.html should have the modal closed")
	}

	if _, err := os.Stat(filepath.Join(out, "static", "style.css")); err != nil {
		t.Errorf("assets not copied: %v", err)
	}
}

func TestRenderSiteCarouselPages(t *testing.T) {
	out := t.TempDir()
	if err := renderSite(testCatalog(t), renderOpts{OutDir: out}); err != nil {
		t.Fatalf("renderSite: %v", err)
	}

	testCases := []struct {
		page    string
		counter string
		prev    string
		next    string
	}{
		{"1.html", "1 / 3", "3.html", "2.html"},
		{"2.html", "2 / 3", "1.html", "3.html"},
		{"3.html", "3 / 3", "2.html", "1.html"},
	}

	for _, tc := range testCases {
		body := readFile(t, filepath.Join(out, "projects", "multi", tc.page))

		if !strings.Contains(body, `<span class="counter">`+tc.counter+`</span>`) {
			t.Errorf("%s: expected counter %q", tc.page, tc.counter)
		}
		if !strings.Contains(body, `class="carousel-arrow prev" href="`+tc.prev+`"`) {
			t.Errorf("%s: prev should link to %s", tc.page, tc.prev)
		}
		if !strings.Contains(body, `class="carousel-arrow next" href="`+tc.next+`"`) {
			t.Errorf("%s: next should link to %s", tc.page, tc.next)
		}
		if !strings.Contains(body, `href="../../index.html"`) {
			t.Errorf("%s: close should link back to the index", tc.page)
		}
		if !strings.Contains(body, `href="../../static/style.css"`) {
			t.Errorf("%s: stylesheet path should be relative to the page", tc.page)
		}
	}

	solo := readFile(t, filepath.Join(out, "projects", "solo", "1.html"))
	if strings.Contains(solo, "carousel-arrow") || strings.Contains(solo, `class="counter"`) {
		t.Error("single image page should have no navigation")
	}
	if !strings.Contains(solo, "Links coming soon...") {
		t.Error("solo page should show the links placeholder")
	}
	if _, err := os.Stat(filepath.Join(out, "projects", "solo", "2.html")); !os.IsNotExist(err) {
		t.Error("solo should have exactly one page")
	}
}
