// Package templates embeds the HTML views so the binary and its tests do not
// depend on the working directory.
package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed layouts/*.html components/*.html pages/*.html
var files embed.FS

// Load parses the base layout, shared components and one page
func Load(page string, funcMap template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New(page).Funcs(funcMap).ParseFS(files,
		"layouts/base.html",
		"components/*.html",
		"pages/"+page+".html",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
	}
	return tmpl, nil
}
