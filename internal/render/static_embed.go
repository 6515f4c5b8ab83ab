package render

import (
	"embed"
	"html/template"
)

//go:embed static/*
var staticFS embed.FS

// defaultStylesheet returns the embedded report stylesheet.
func defaultStylesheet() string {
	raw, err := staticFS.ReadFile("static/report.css")
	if err != nil {
		// Embedded at build time; an error means the binary is broken.
		panic(err)
	}
	return string(raw)
}

// shellTemplate parses the embedded document shell.
func shellTemplate() *template.Template {
	return template.Must(template.ParseFS(staticFS, "static/shell.html.tmpl"))
}
