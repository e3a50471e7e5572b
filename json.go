package pdfoutline

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// outlineJSON fixes the wire shape consumed downstream: field order and key
// names are schema-validated by the consuming environment and must not
// change.
type outlineJSON struct {
	Title   string      `json:"title"`
	Outline []entryJSON `json:"outline"`
}

type entryJSON struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// MarshalJSON serializes the outline with a fixed key order. An outline with
// no entries serializes as an empty array, never null: an empty outline is a
// valid result, not a missing one.
func (o Outline) MarshalJSON() ([]byte, error) {
	out := outlineJSON{
		Title:   o.Title,
		Outline: make([]entryJSON, 0, len(o.Entries)),
	}
	for _, entry := range o.Entries {
		out.Outline = append(out.Outline, entryJSON{
			Level: entry.Level.String(),
			Text:  entry.Text,
			Page:  entry.Page,
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores an outline from its wire form.
func (o *Outline) UnmarshalJSON(data []byte) error {
	var in outlineJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	o.Title = in.Title
	o.Entries = make([]OutlineEntry, 0, len(in.Outline))
	for _, entry := range in.Outline {
		level, err := ParseLevel(entry.Level)
		if err != nil {
			return err
		}
		o.Entries = append(o.Entries, OutlineEntry{
			Level: level,
			Text:  entry.Text,
			Page:  entry.Page,
		})
	}
	return nil
}

// ParseLevel parses the serialized form of a heading level.
func ParseLevel(s string) (HeadingLevel, error) {
	switch s {
	case "H1":
		return H1, nil
	case "H2":
		return H2, nil
	case "H3":
		return H3, nil
	case "H4":
		return H4, nil
	default:
		return 0, errors.Errorf("invalid heading level %q", s)
	}
}
