package pdfoutline

import (
	"bytes"
	"fmt"

	"github.com/ivanvanderbyl/markdown"
)

// ToMarkdown renders the outline as a markdown document: the title as H1 and
// each entry as a heading one level below its own, annotated with its
// 0-indexed page. Useful for eyeballing results; the JSON form is the
// downstream contract.
func (o *Outline) ToMarkdown() string {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	if o.Title != "" {
		md.H1(o.Title)
		md.LF()
	}

	for _, entry := range o.Entries {
		text := fmt.Sprintf("%s (page %d)", entry.Text, entry.Page)
		switch entry.Level {
		case H1:
			md.H2(text)
		case H2:
			md.H3(text)
		case H3:
			md.H4(text)
		default:
			md.H5(text)
		}
	}

	if err := md.Build(); err != nil {
		return ""
	}

	return buf.String()
}
