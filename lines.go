package pdfoutline

import (
	"math"
	"sort"
	"strings"
)

const (
	// Baseline tolerance as a fraction of the smaller font size of the
	// two runs being compared, with a fixed floor for tiny sizes.
	baselineToleranceRatio = 0.4
	baselineToleranceFloor = 3.0

	// Horizontal gaps beyond this multiple of the font size are
	// indentation jumps, not word spacing, and split the line.
	maxWordGapRatio = 2.5

	// Runs markedly smaller than the line fold in as super/subscripts
	// without affecting the dominant size.
	superscriptSizeRatio = 0.6
)

// ReconstructLines merges the ordered runs of one document into logical
// lines. Runs on different pages never merge; whitespace-only runs are
// dropped before merging. A page yielding zero runs simply contributes zero
// lines.
func ReconstructLines(runs []Run) []Line {
	if len(runs) == 0 {
		return nil
	}

	byPage := make(map[int][]Run)
	var pageOrder []int
	for _, run := range runs {
		if strings.TrimSpace(run.Text) == "" {
			continue
		}
		if _, seen := byPage[run.Page]; !seen {
			pageOrder = append(pageOrder, run.Page)
		}
		byPage[run.Page] = append(byPage[run.Page], run)
	}
	sort.Ints(pageOrder)

	var lines []Line
	for _, page := range pageOrder {
		lines = append(lines, reconstructPageLines(byPage[page])...)
	}
	return lines
}

// reconstructPageLines groups the runs of a single page into lines by
// baseline proximity, then orders runs within each line by X and finalizes
// derived attributes.
func reconstructPageLines(runs []Run) []Line {
	sorted := make([]Run, len(runs))
	copy(sorted, runs)
	sort.Slice(sorted, func(i, j int) bool {
		if sameBaseline(sorted[i], sorted[j]) {
			return sorted[i].Box.X0 < sorted[j].Box.X0
		}
		return sorted[i].Baseline < sorted[j].Baseline
	})

	var lines []Line
	var current []Run

	flush := func() {
		if len(current) > 0 {
			lines = append(lines, finalizeLine(current))
			current = nil
		}
	}

	for _, run := range sorted {
		if len(current) == 0 {
			current = []Run{run}
			continue
		}

		anchor := current[len(current)-1]
		if !sameBaseline(anchor, run) {
			flush()
			current = []Run{run}
			continue
		}

		// Same baseline: check the horizontal gap. A large jump is a
		// separate layout cell (e.g. a header on the left, a page
		// number on the right), not a continuation.
		gap := run.Box.X0 - anchor.Box.X1
		maxGap := maxWordGapRatio * math.Min(run.FontSize, anchor.FontSize)
		if gap > maxGap {
			flush()
			current = []Run{run}
			continue
		}

		current = append(current, run)
	}
	flush()

	// Order the emitted lines by vertical position for stable downstream
	// gap computation.
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Box.Y0 == lines[j].Box.Y0 {
			return lines[i].Box.X0 < lines[j].Box.X0
		}
		return lines[i].Box.Y0 < lines[j].Box.Y0
	})

	return lines
}

// sameBaseline reports whether two runs sit on the same text baseline. The
// tolerance is proportional to the smaller font size so dense small print
// does not merge across lines. Overlapping runs with a markedly smaller size
// (superscripts, footnote markers) belong to the base line even when their
// baseline is shifted.
func sameBaseline(a, b Run) bool {
	smaller := math.Min(a.FontSize, b.FontSize)
	larger := math.Max(a.FontSize, b.FontSize)

	tolerance := baselineToleranceRatio * smaller
	if tolerance < baselineToleranceFloor {
		tolerance = baselineToleranceFloor
	}

	if math.Abs(a.Baseline-b.Baseline) < tolerance {
		return true
	}

	// Superscript case: much smaller run whose box vertically overlaps
	// the larger run's box.
	if larger > 0 && smaller/larger <= superscriptSizeRatio {
		overlapTop := math.Max(a.Box.Y0, b.Box.Y0)
		overlapBottom := math.Min(a.Box.Y1, b.Box.Y1)
		return overlapBottom > overlapTop
	}

	return false
}

// finalizeLine builds a Line from its runs: box union, gap-aware text
// concatenation, and dominant font attributes by character count.
func finalizeLine(runs []Run) Line {
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Box.X0 < runs[j].Box.X0
	})

	line := Line{
		Runs: runs,
		Box:  runs[0].Box,
		Page: runs[0].Page,
	}

	var text strings.Builder
	var prev *Run
	for i := range runs {
		run := runs[i]
		if prev != nil {
			line.Box = mergeRects(line.Box, run.Box)
			gap := run.Box.X0 - prev.Box.X1
			if gap > 0.2*math.Min(run.FontSize, prev.FontSize) &&
				!strings.HasSuffix(text.String(), " ") {
				text.WriteByte(' ')
			}
		}
		text.WriteString(run.Text)
		prev = &runs[i]
	}
	line.Text = normalizeText(text.String())

	// Dominant attributes come from the run with the most characters, not
	// the first or last run.
	dominant := runs[0]
	dominantChars := dominant.CharCount()
	var baselineWeight float64
	var baselineSum float64
	for _, run := range runs[1:] {
		if c := run.CharCount(); c > dominantChars {
			dominant = run
			dominantChars = c
		}
	}
	for _, run := range runs {
		w := float64(run.CharCount())
		baselineSum += run.Baseline * w
		baselineWeight += w
	}
	line.FontSize = dominant.FontSize
	line.Bold = dominant.Bold
	if baselineWeight > 0 {
		line.Baseline = baselineSum / baselineWeight
	} else {
		line.Baseline = dominant.Baseline
	}

	return line
}
