// Package web embeds the HTML views.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var Templates embed.FS

// Funcs are the helpers available to every view.
var Funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Local().Format("2006-01-02 15:04:05")
	},
}

// Load parses all views.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(Templates, "templates/*.html")
}
