package pdfoutline

import "strings"

// Rect represents a bounding box in page coordinates.
type Rect struct {
	X0 float64 // Left
	Y0 float64 // Top (after conversion from PDF coordinates)
	X1 float64 // Right
	Y1 float64 // Bottom (after conversion from PDF coordinates)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 {
	return (r.X0 + r.X1) / 2
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// RGBA represents a fill color.
type RGBA struct {
	R, G, B, A uint
}

// Run is an atomic styled text fragment produced by page decoding: a maximal
// sequence of characters sharing one font, size and baseline. Runs are
// immutable once extracted.
type Run struct {
	Text      string
	FontName  string
	FontSize  float64
	Bold      bool
	Italic    bool
	FillColor RGBA
	Box       Rect
	Baseline  float64 // Y-coordinate of the text baseline
	Page      int     // 0-indexed page number
}

// CharCount returns the number of printable characters in the run. Heading
// classification weighs runs by character count rather than run count.
func (r Run) CharCount() int {
	count := 0
	for _, c := range r.Text {
		if c != ' ' && c != '\t' {
			count++
		}
	}
	return count
}

// Line is a sequence of Runs merged because they share a baseline and are
// spatially contiguous. Dominant font attributes come from the run
// contributing the most characters, so an isolated bold punctuation run
// cannot skew classification.
type Line struct {
	Runs     []Run
	Text     string
	FontSize float64 // Dominant font size by character count
	Bold     bool    // Dominant weight by character count
	Box      Rect
	Baseline float64
	Page     int
}

// Y returns the line's vertical position (top of its bounding box). Outline
// entries are ordered by (page, Y).
func (l Line) Y() float64 {
	return l.Box.Y0
}

// CharCount returns the total printable character count across all runs.
func (l Line) CharCount() int {
	count := 0
	for _, r := range l.Runs {
		count += r.CharCount()
	}
	return count
}

// HeadingLevel is a closed enumeration of outline depths.
type HeadingLevel int

const (
	H1 HeadingLevel = iota + 1
	H2
	H3
	H4
)

// levelForDepth maps a numbering depth onto a heading level, capping
// anything deeper than four at H4.
func levelForDepth(depth int) HeadingLevel {
	switch {
	case depth <= 1:
		return H1
	case depth == 2:
		return H2
	case depth == 3:
		return H3
	default:
		return H4
	}
}

// String returns the serialized form used in outline output.
func (h HeadingLevel) String() string {
	switch h {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	default:
		return "H4"
	}
}

// Signals holds the per-signal contributions that produced a candidate's
// score. Kept for debugging and tests; not serialized.
type Signals struct {
	SizeRatio float64
	Weight    float64
	Numbering float64
	Isolation float64
	Casing    float64
	Length    float64
}

// HeadingCandidate is a scored line under consideration for the outline.
// Candidates are ephemeral: produced and consumed within one document run.
type HeadingCandidate struct {
	Line           Line
	Score          float64
	Signals        Signals
	NumberingDepth int // 0 when no numbering pattern matched
	Level          HeadingLevel
}

// TitleResult is the detected document title. The zero value means no line
// cleared the title threshold, which is a valid result for documents like
// flyers without a canonical title.
type TitleResult struct {
	Text string
	Page int
}

// OutlineEntry is one classified heading in the final outline.
type OutlineEntry struct {
	Level HeadingLevel
	Text  string
	Page  int // 0-indexed
}

// Outline is the final result for one document: the title (empty string when
// none was detected) and the ordered heading entries.
type Outline struct {
	Title   string
	Entries []OutlineEntry
}

// PageInfo carries page dimensions from decoding into the pipeline. Title
// centering needs the page width; everything else works from line boxes.
type PageInfo struct {
	Index  int
	Width  float64
	Height float64
}

// normalizeText collapses runs of whitespace into single spaces and trims
// the ends. Outline text is compared and emitted in this form.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
