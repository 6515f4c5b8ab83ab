package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/okian/fplpulse/internal/domain/types"
)

const indexStampLayout = "2006-01-02 15:04:05"

// IndexMarkdown renders the history index as Markdown linking to each entry.
func (r *Renderer) IndexMarkdown(idx types.HistoryIndex, at time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\nUpdated %s\n\n", r.siteTitle, at.Format(indexStampLayout))

	latest, ok := idx.Latest()
	if !ok {
		b.WriteString("No reports yet.\n")
		return b.Bytes()
	}
	fmt.Fprintf(&b, "**Latest:** %s\n\n## History\n\n", link(latest))
	for _, e := range idx.Entries {
		fmt.Fprintf(&b, "- %s\n", link(e))
	}
	return b.Bytes()
}

// IndexHTML renders the history index as an HTML document.
func (r *Renderer) IndexHTML(idx types.HistoryIndex, at time.Time) ([]byte, error) {
	return r.document(r.siteTitle, r.IndexMarkdown(idx, at))
}

// Index renders the index document matching idx.Ext.
func (r *Renderer) Index(idx types.HistoryIndex, at time.Time) (Rendered, error) {
	switch idx.Ext {
	case MD.Ext():
		return Rendered{Format: MD, Body: r.IndexMarkdown(idx, at), GeneratedAt: at}, nil
	case HTML.Ext():
		body, err := r.IndexHTML(idx, at)
		if err != nil {
			return Rendered{}, err
		}
		return Rendered{Format: HTML, Body: body, GeneratedAt: at}, nil
	default:
		return Rendered{}, fmt.Errorf("%w: index %q", ErrUnknownFormat, idx.Ext)
	}
}

func link(e types.HistoryEntry) string {
	return "[" + cellEscaper.Replace(e.Name) + "](" + e.Name + ")"
}
