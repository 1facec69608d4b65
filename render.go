package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"

	"github.com/Zachkp/work-timeline/internal/gallery"
	"github.com/Zachkp/work-timeline/internal/models"
	"github.com/Zachkp/work-timeline/internal/viewer"
)

// renderOpts controls a static export of the work page
type renderOpts struct {
	OutDir    string
	AssetDirs []string // copied as-is under OutDir, e.g. static/ and images/
}

// renderSite writes index.html plus one page per project image. Carousel
// controls become links between those pages, so the export needs no server.
func renderSite(c *models.Catalog, o renderOpts) error {
	tmpl, err := loadTemplates()
	if err != nil {
		return err
	}

	if err := copyAssets(o.AssetDirs, o.OutDir); err != nil {
		return fmt.Errorf("copyAssets: %w", err)
	}

	g := gallery.New(c.Project)

	index := buildPage(c, g, staticLinks{})
	if err := writePage(tmpl, index, filepath.Join(o.OutDir, "index.html")); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	klog.Infof("Writing out %d projects ...", len(c.Projects))
	for key, p := range c.Projects {
		if err := writeProject(tmpl, c, g, key, p, o.OutDir); err != nil {
			return fmt.Errorf("write project %s: %w", key, err)
		}
	}

	return nil
}

func writeProject(tmpl *template.Template, c *models.Catalog, g *gallery.Gallery, key string, p models.Project, outDir string) error {
	links := staticLinks{base: "../../"}
	klog.V(1).Infof("rendering project %s with %d images ...", key, len(p.Images))

	for i := range p.Images {
		car := viewer.NewCarousel(len(p.Images))
		if err := car.Select(i); err != nil {
			return err
		}

		page := buildPage(c, g, links)
		page.Modal = buildModal(viewer.Build(p, car), links)

		path := filepath.Join(outDir, filepath.FromSlash(projectPagePath(key, i)))
		if err := writePage(tmpl, page, path); err != nil {
			return err
		}
	}
	return nil
}

func writePage(tmpl *template.Template, page pageData, path string) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		return fmt.Errorf("execute: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	klog.V(1).Infof("Writing %s", path)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func copyAssets(dirs []string, outDir string) error {
	for _, d := range dirs {
		st, err := os.Stat(d)
		if os.IsNotExist(err) {
			klog.V(1).Infof("skipping missing asset dir %s", d)
			continue
		}
		if err != nil {
			return err
		}
		if !st.IsDir() {
			return fmt.Errorf("%s is not a directory", d)
		}

		dest := filepath.Join(outDir, filepath.Base(d))
		klog.V(1).Infof("copying assets from %s to %s", d, dest)
		if err := copy.Copy(d, dest); err != nil {
			return err
		}
	}
	return nil
}
