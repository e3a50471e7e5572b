package pdfoutline

import (
	"sort"
	"strings"
	"unicode"
)

// Signal weights for the headingness score. The weights are fixed constants
// tuned for cross-document generalization, never per document: a candidate
// needs either a strong size signal or agreement between several weaker
// signals to clear the acceptance threshold.
const (
	weightSizeRatio = 3.0
	weightBold      = 1.5
	weightNumbering = 2.5
	weightIsolation = 1.5
	weightCasing    = 1.0
	weightLength    = 2.0

	// Size ratios below this score zero; the ramp tops out at
	// sizeRatioCap, beyond which bigger text adds nothing.
	sizeRatioFloor = 1.15
	sizeRatioCap   = 1.75

	// Lines ending in sentence punctuation and longer than this are
	// treated as prose.
	proseLengthThreshold = 50

	// Hard length caps: a heading is not a full paragraph.
	headingSoftMaxChars = 80
	headingHardMaxChars = 120
	headingMinChars     = 3

	// A vertical gap this many times the single-line-spacing norm counts
	// as visual isolation.
	isolationGapRatio = 1.8
)

// ScoreHeadings assigns every line a headingness score from the independent
// signal functions and returns the candidates whose score clears the
// acceptance threshold. Rejected lines are normal prose, discarded silently.
// The title line, when present, must be excluded by the caller beforehand.
func ScoreHeadings(lines []Line, stats DocumentStatistics, cfg Config) []HeadingCandidate {
	gaps := neighborGaps(lines)

	var candidates []HeadingCandidate
	for i, line := range lines {
		signals := Signals{
			SizeRatio: sizeRatioSignal(line, stats),
			Weight:    weightSignal(line),
			Numbering: numberingSignal(line),
			Isolation: isolationSignal(gaps[i], stats),
			Casing:    casingSignal(line),
			Length:    lengthSignal(line),
		}

		score := weightSizeRatio*signals.SizeRatio +
			weightBold*signals.Weight +
			weightNumbering*signals.Numbering +
			weightIsolation*signals.Isolation +
			weightCasing*signals.Casing +
			weightLength*signals.Length

		if score <= cfg.HeadingThreshold {
			continue
		}

		candidates = append(candidates, HeadingCandidate{
			Line:           line,
			Score:          score,
			Signals:        signals,
			NumberingDepth: numberingDepth(line.Text),
		})
	}

	return candidates
}

// lineGaps holds a line's vertical distance to its neighbors on the same
// page. A negative value means no neighbor on that side (start/end of page),
// which counts as isolation.
type lineGaps struct {
	before float64
	after  float64
}

// neighborGaps computes, for each line, the vertical gap to the previous and
// next line on the same page.
func neighborGaps(lines []Line) []lineGaps {
	gaps := make([]lineGaps, len(lines))

	byPage := make(map[int][]int)
	for i, line := range lines {
		byPage[line.Page] = append(byPage[line.Page], i)
	}

	for _, indices := range byPage {
		sort.Slice(indices, func(a, b int) bool {
			return lines[indices[a]].Box.Y0 < lines[indices[b]].Box.Y0
		})
		for pos, idx := range indices {
			gaps[idx] = lineGaps{before: -1, after: -1}
			if pos > 0 {
				gaps[idx].before = lines[idx].Box.Y0 - lines[indices[pos-1]].Box.Y1
			}
			if pos < len(indices)-1 {
				gaps[idx].after = lines[indices[pos+1]].Box.Y0 - lines[idx].Box.Y1
			}
		}
	}

	return gaps
}

// sizeRatioSignal scores the line's dominant size against the body-text
// size. Ratios near 1.0 score zero; the score grows monotonically from the
// floor ratio up to the cap. Documents with a single dominant size score
// zero here and fall back entirely to the other signals.
func sizeRatioSignal(line Line, stats DocumentStatistics) float64 {
	if stats.BodySize <= 0 {
		return 0
	}
	ratio := line.FontSize / stats.BodySize
	return clamp((ratio-sizeRatioFloor)/(sizeRatioCap-sizeRatioFloor), 0, 1)
}

// weightSignal scores bold lines. Plain-weight lines contribute nothing.
func weightSignal(line Line) float64 {
	if line.Bold {
		return 1
	}
	return 0
}

// numberingSignal scores a leading outline-numbering pattern, higher for
// shallower depth: "2 Overview" is stronger heading evidence than "2.3.4.1".
func numberingSignal(line Line) float64 {
	depth := numberingDepth(line.Text)
	if depth == 0 {
		return 0
	}
	return clamp(1.0-0.15*float64(depth-1), 0.4, 1.0)
}

// isolationSignal scores lines set apart from their surroundings by vertical
// gaps larger than the single-line-spacing norm. Page edges count as
// isolated sides.
func isolationSignal(gaps lineGaps, stats DocumentStatistics) float64 {
	norm := stats.LineGapMedian
	if norm <= 0 {
		norm = stats.BodySize * 0.4
	}
	if norm <= 0 {
		return 0
	}

	score := 0.0
	if gaps.before < 0 || gaps.before > isolationGapRatio*norm {
		score += 0.5
	}
	if gaps.after < 0 || gaps.after > isolationGapRatio*norm {
		score += 0.5
	}
	return score
}

// casingSignal scores heading-like casing and penalizes prose. An all-caps
// or title-cased short line scores positively; a long line ending in a
// sentence-terminating period scores negatively.
func casingSignal(line Line) float64 {
	text := line.Text
	if text == "" {
		return 0
	}

	if strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "..") &&
		len(text) > proseLengthThreshold {
		return -1
	}

	if isAllCaps(text) && len(text) >= 4 && len(text) <= 60 {
		return 1
	}

	if isTitleCase(text) && wordCount(text) <= 8 {
		return 0.6
	}

	return 0
}

// lengthSignal applies the hard length caps. Extremely long lines are
// penalized regardless of the other signals, and sub-minimal fragments
// (stray punctuation, single characters) are pushed below threshold.
func lengthSignal(line Line) float64 {
	n := len(line.Text)
	switch {
	case n < headingMinChars:
		return -1
	case n > headingHardMaxChars:
		return -1
	case n > headingSoftMaxChars:
		return -0.5
	default:
		return 0
	}
}

// isAllCaps reports whether the text's letters are all uppercase and at
// least one letter is present.
func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isTitleCase reports whether every word starting with a letter starts
// uppercase. Leading numbering segments ("1.2 Overview") are skipped so
// numbered headings still qualify.
func isTitleCase(text string) bool {
	words := strings.Fields(text)
	checked := false
	for _, word := range words {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) {
			continue
		}
		checked = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return checked
}

// wordCount counts whitespace-separated words.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
