// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page with the shared helpers.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).ParseFS(files, "templates/*.html")
}
