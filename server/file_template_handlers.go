package server

import (
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

var templateFS = mustSub(templateFiles, "templates")

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "Never"
		}
		return t.Format("2 Jan 2006")
	},
	"datetime": func(t time.Time) string {
		return t.Format("2 Jan 2006 15:04")
	},
}

// pageTemplate is a page body parsed together with the shared layout
type pageTemplate struct {
	tmpl *template.Template
}

// parsePage parses a page from the embedded filesystem. The page defines the
// "content" block rendered inside the layout.
func parsePage(name string) (*pageTemplate, error) {
	tmpl, err := template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(templateFS, layoutTemplate, name)
	if err != nil {
		return nil, err
	}
	return &pageTemplate{tmpl: tmpl}, nil
}

func (p *pageTemplate) Execute(w io.Writer, data any) error {
	return p.tmpl.ExecuteTemplate(w, layoutTemplate, data)
}
