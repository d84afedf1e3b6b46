// Package web holds the landing page template and the admin console assets.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templates embed.FS

var funcs = template.FuncMap{
	"initial": func(name string) string {
		name = strings.TrimSpace(name)
		if name == "" {
			return ""
		}
		return strings.ToUpper(string([]rune(name)[0]))
	},
}

// LandingTemplate parses the embedded landing page.
func LandingTemplate() (*template.Template, error) {
	return template.New("landing.html").Funcs(funcs).ParseFS(templates, "templates/landing.html")
}
