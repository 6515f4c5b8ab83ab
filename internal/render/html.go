// Package render turns ranked reports and history indexes into text,
// Markdown and HTML documents. Every renderer is a pure function of its
// input; the timestamp comes from the report, never the clock.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/okian/fplpulse/internal/domain/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer produces every format of a report. It is safe for concurrent use.
type Renderer struct {
	md        goldmark.Markdown
	shell     *template.Template
	siteTitle string
	css       string
}

// New creates a Renderer with configuration options.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		md:        goldmark.New(goldmark.WithExtensions(extension.Table)),
		shell:     shellTemplate(),
		siteTitle: DefaultSiteTitle,
		css:       defaultStylesheet(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type shellData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// HTML renders the report's Markdown to HTML inside the document shell.
func (r *Renderer) HTML(rep types.Report) ([]byte, error) {
	title, err := Title(rep)
	if err != nil {
		return nil, err
	}
	src, err := Markdown(rep)
	if err != nil {
		return nil, err
	}
	return r.document(title, src)
}

// Render produces one format of the report.
func (r *Renderer) Render(rep types.Report, f Format) (Rendered, error) {
	var (
		body []byte
		err  error
	)
	switch f {
	case TXT:
		body, err = Text(rep)
	case MD:
		body, err = Markdown(rep)
	case HTML:
		body, err = r.HTML(rep)
	default:
		return Rendered{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", f, err)
	}
	return Rendered{Format: f, Body: body, GeneratedAt: rep.GeneratedAt}, nil
}

// RenderAll produces the given formats in order, stopping at the first error.
func (r *Renderer) RenderAll(rep types.Report, formats ...Format) ([]Rendered, error) {
	out := make([]Rendered, 0, len(formats))
	for _, f := range formats {
		doc, err := r.Render(rep, f)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// document converts Markdown and wraps it in the shell.
func (r *Renderer) document(title string, src []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConvert, err)
	}
	var out bytes.Buffer
	err := r.shell.Execute(&out, shellData{
		Title: title,
		CSS:   template.CSS(r.css), //nolint:gosec // embedded or operator supplied stylesheet
		Body:  template.HTML(body.String()), //nolint:gosec // goldmark output with raw HTML disabled
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConvert, err)
	}
	return out.Bytes(), nil
}
