package main

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/Zachkp/work-timeline/internal/viewer"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed data/work.yaml
var defaultWorkData []byte

// loadTemplates parses every page and fragment template. Each file is
// registered under its base name, as gin's LoadHTMLGlob would.
func loadTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(tmplFunctions()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// tmplFunctions are functions available to our templates.
func tmplFunctions() template.FuncMap {
	return template.FuncMap{
		// Asset resolves a local image path against root. Absolute paths and
		// remote URLs are returned unchanged.
		"Asset": func(root, src string) string {
			if strings.HasPrefix(src, "/") || strings.Contains(src, "://") {
				return src
			}
			return root + src
		},
		"Text": func() map[string]string {
			return map[string]string{
				"TechStack":  TechStackHeading,
				"Close":      CloseLabel,
				"Prev":       PrevLabel,
				"Next":       NextLabel,
				"Dot":        DotLabel,
				"ComingSoon": viewer.ComingSoonText,
			}
		},
	}
}
