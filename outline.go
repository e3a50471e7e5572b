package pdfoutline

import (
	"sort"

	"github.com/pkg/errors"
)

// BuildOutline runs the full inference pipeline over the raw runs of one
// document: line reconstruction, global statistics, title detection, heading
// scoring, level classification and outline assembly. It is a total,
// deterministic function of its inputs — no stage blocks, no state survives
// the call — so documents can be processed in parallel with one call each.
//
// pages may be nil; page widths are then inferred from line extents.
func BuildOutline(runs []Run, pages []PageInfo, cfg Config) (*Outline, error) {
	lines := ReconstructLines(runs)
	stats := ComputeStatistics(lines, pages)
	return buildOutlineFromLines(lines, stats, cfg)
}

// buildOutlineFromLines runs the pipeline stages downstream of line
// reconstruction.
func buildOutlineFromLines(lines []Line, stats DocumentStatistics, cfg Config) (*Outline, error) {
	if err := checkPageBounds(lines, stats); err != nil {
		return nil, err
	}

	title := DetectTitle(lines, stats, cfg)

	remaining := lines
	if title.Text != "" {
		remaining = excludeTitleLines(lines, title)
	}

	candidates := ScoreHeadings(remaining, stats, cfg)
	candidates = ClassifyLevels(candidates, cfg)

	return AssembleOutline(candidates, title)
}

// AssembleOutline produces the final ordered outline from the leveled
// candidates and the title result. This stage is pure: ordering and
// filtering only, no scoring decisions.
func AssembleOutline(candidates []HeadingCandidate, title TitleResult) (*Outline, error) {
	titleText := normalizeText(title.Text)

	type positioned struct {
		entry OutlineEntry
		y     float64
	}

	entries := make([]positioned, 0, len(candidates))
	for _, cand := range candidates {
		if cand.Line.Page < 0 {
			return nil, errors.Errorf("heading candidate %q references negative page %d",
				cand.Line.Text, cand.Line.Page)
		}
		// The title is reported in its own field, never double-reported
		// as an outline entry.
		if titleText != "" && cand.Line.Text == titleText {
			continue
		}
		entries = append(entries, positioned{
			entry: OutlineEntry{
				Level: cand.Level,
				Text:  cand.Line.Text,
				Page:  cand.Line.Page,
			},
			y: cand.Line.Y(),
		})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].entry.Page != entries[b].entry.Page {
			return entries[a].entry.Page < entries[b].entry.Page
		}
		return entries[a].y < entries[b].y
	})

	sorted := make([]OutlineEntry, 0, len(entries))
	for _, p := range entries {
		sorted = append(sorted, p.entry)
	}

	return &Outline{
		Title:   titleText,
		Entries: dedupeConsecutive(sorted),
	}, nil
}

// dedupeConsecutive drops consecutive entries with identical text, level and
// page. A heading rendered as overlapping duplicate runs can survive line
// merging as two adjacent identical lines; it must appear once.
func dedupeConsecutive(entries []OutlineEntry) []OutlineEntry {
	deduped := entries[:0]
	for i, entry := range entries {
		if i > 0 {
			prev := deduped[len(deduped)-1]
			if prev.Text == entry.Text && prev.Level == entry.Level && prev.Page == entry.Page {
				continue
			}
		}
		deduped = append(deduped, entry)
	}
	return deduped
}

// excludeTitleLines removes the line(s) whose text makes up the title so the
// heading scorer never sees them.
func excludeTitleLines(lines []Line, title TitleResult) []Line {
	titleText := normalizeText(title.Text)
	remaining := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.Page == title.Page && partOfTitle(line.Text, titleText) {
			continue
		}
		remaining = append(remaining, line)
	}
	return remaining
}

// partOfTitle reports whether a line's text is the title or one of the
// display lines a multi-line title was joined from.
func partOfTitle(lineText, titleText string) bool {
	if lineText == titleText {
		return true
	}
	// Joined titles use a single space; a component line matches a prefix
	// or suffix on a word boundary.
	if len(lineText) > 0 && len(lineText) < len(titleText) {
		if titleText[:len(lineText)] == lineText && titleText[len(lineText)] == ' ' {
			return true
		}
		off := len(titleText) - len(lineText)
		if titleText[off:] == lineText && titleText[off-1] == ' ' {
			return true
		}
	}
	return false
}

// checkPageBounds enforces the internal invariant that no line references a
// page outside the decoder-reported page count. A violation is a programming
// defect in upstream decoding and fails the document rather than being
// silently coerced.
func checkPageBounds(lines []Line, stats DocumentStatistics) error {
	for _, line := range lines {
		if line.Page < 0 {
			return errors.Errorf("line %q references negative page %d", line.Text, line.Page)
		}
		if stats.PageCount > 0 && line.Page >= stats.PageCount {
			return errors.Errorf("line %q references page %d beyond page count %d",
				line.Text, line.Page, stats.PageCount)
		}
	}
	return nil
}

// totalByLevel returns how many entries sit at each level. Used by metrics
// reporting.
func (o *Outline) totalByLevel() map[HeadingLevel]int {
	counts := make(map[HeadingLevel]int)
	for _, entry := range o.Entries {
		counts[entry.Level]++
	}
	return counts
}
