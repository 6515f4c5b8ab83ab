package render

import (
	"bytes"
	"strings"

	"github.com/okian/fplpulse/internal/domain/types"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", " ")

// Markdown renders the report as a heading plus one pipe table per set.
func Markdown(r types.Report) ([]byte, error) {
	title, err := Title(r)
	if err != nil {
		return nil, err
	}
	header, cells, err := columns(r.Variant)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString("# " + title + "\n")
	for _, set := range r.Sets {
		b.WriteString("\n## " + SetHeading(set) + "\n\n")
		writeRow(&b, header)
		sep := make([]string, len(header))
		for i := range sep {
			sep[i] = "---"
		}
		writeRow(&b, sep)
		for _, p := range set.Players {
			writeRow(&b, cells(p))
		}
	}
	return b.Bytes(), nil
}

func writeRow(b *bytes.Buffer, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(cellEscaper.Replace(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
