package pdfoutline

import (
	"math"
	"sort"
	"strings"
)

// Title scoring constants. The title signals differ from heading signals:
// the title is judged against the other lines in the opening window, not
// against the body-text baseline.
const (
	titleScoreMaxSize    = 3.0 // largest size in the window
	titleScoreNearMax    = 2.0 // within 95% of the largest size
	titleScoreTop        = 1.5 // upper band of the page
	titleScoreCentered   = 1.0
	titleScoreBold       = 1.0
	titleScoreLength     = 1.0
	titleScoreNoPeriod   = 0.5
	titleScoreUniqueSize = 1.0 // size used by no other line in the window
	titleScoreFirstPage  = 0.5

	titlePenaltyExtreme = 2.0 // single characters and full paragraphs
	titlePenaltyPeriod  = 1.0 // terminal sentence punctuation reads as prose

	// A leading outline-numbering pattern all but rules a line out as the
	// document title; it is a section heading.
	titlePenaltyNumbering = 5.0

	// Continuation lines within this multiple of the line height below
	// the winner can extend a multi-line title.
	titleContinuationGapRatio = 1.6
	// A continuation must be set within this many points of the winner's
	// size to read as part of the same display block.
	titleContinuationSizeSlack = 4.0
)

// DetectTitle scores the lines of the opening page window and returns the
// single best title candidate, or the zero TitleResult when no line clears
// Config.TitleThreshold. An absent title is an expected result, not an
// error. When the winning line is directly followed by a near-equal display
// line, the two are joined: display titles often wrap across lines.
func DetectTitle(lines []Line, stats DocumentStatistics, cfg Config) TitleResult {
	window := titleWindow(lines, cfg.TitleWindowPages)
	if len(window) == 0 {
		return TitleResult{}
	}

	maxSize := 0.0
	sizeUses := make(map[float64]int)
	for _, line := range window {
		maxSize = math.Max(maxSize, line.FontSize)
		sizeUses[sizeKey(line.FontSize)]++
	}

	best := -1
	bestScore := 0.0
	scores := make([]float64, len(window))
	for i, line := range window {
		scores[i] = titleScore(line, stats, maxSize, sizeUses)
		if scores[i] > bestScore {
			bestScore = scores[i]
			best = i
		}
	}

	if best < 0 || bestScore < cfg.TitleThreshold {
		return TitleResult{}
	}

	winner := window[best]
	text := winner.Text
	if cont, ok := titleContinuation(window, scores, best, cfg); ok {
		text = text + " " + cont.Text
	}

	return TitleResult{Text: normalizeText(text), Page: winner.Page}
}

// titleWindow restricts lines to the first n pages of the document. The
// window is counted from the first page that has any text: documents opening
// with a blank or image-only page still get a title window.
func titleWindow(lines []Line, n int) []Line {
	if len(lines) == 0 || n <= 0 {
		return nil
	}

	firstPage := lines[0].Page
	for _, line := range lines {
		if line.Page < firstPage {
			firstPage = line.Page
		}
	}

	var window []Line
	for _, line := range lines {
		if line.Page < firstPage+n {
			window = append(window, line)
		}
	}
	sort.SliceStable(window, func(i, j int) bool {
		if window[i].Page != window[j].Page {
			return window[i].Page < window[j].Page
		}
		return window[i].Box.Y0 < window[j].Box.Y0
	})
	return window
}

// titleScore combines font-size rank, vertical position, horizontal
// centering, weight, length bounds, terminal punctuation and size uniqueness
// into a single title score.
func titleScore(line Line, stats DocumentStatistics, maxSize float64, sizeUses map[float64]int) float64 {
	score := 0.0

	// Size rank is measured against the body size as well as the window
	// maximum: in a document set entirely in one size, no line is
	// typographically distinguished enough to be the title on size alone.
	switch {
	case line.FontSize <= stats.BodySize:
		// no size evidence
	case line.FontSize >= maxSize:
		score += titleScoreMaxSize
	case line.FontSize >= 0.95*maxSize:
		score += titleScoreNearMax
	case maxSize > 0:
		score += titleScoreNearMax * (line.FontSize / maxSize)
	}

	// Nearer the top scores higher, but centered large text further down
	// the window stays eligible through the other signals.
	if width := stats.pageWidth(line.Page); width > 0 {
		if math.Abs(line.Box.CenterX()-width/2) < 0.1*width {
			score += titleScoreCentered
		}
	}
	if line.Box.Y0 < 250 {
		score += titleScoreTop
	} else if line.Box.Y0 < 450 {
		score += titleScoreTop / 2
	}

	if line.Bold {
		score += titleScoreBold
	}

	words := wordCount(line.Text)
	chars := len(line.Text)
	switch {
	case chars < 4 || chars > 150:
		score -= titlePenaltyExtreme
	case words >= 2 && words <= 15:
		score += titleScoreLength
	}

	if strings.HasSuffix(line.Text, ".") || strings.HasSuffix(line.Text, "!") {
		score -= titlePenaltyPeriod
	} else {
		score += titleScoreNoPeriod
	}

	if numberingDepth(line.Text) > 0 {
		score -= titlePenaltyNumbering
	}

	// Titles are typically set in a size used nowhere else in the window.
	if sizeUses[sizeKey(line.FontSize)] == 1 {
		score += titleScoreUniqueSize
	}

	if line.Page == 0 {
		score += titleScoreFirstPage
	}

	return score
}

// titleContinuation finds a second display line directly below the winner
// that reads as the wrapped remainder of the title.
func titleContinuation(window []Line, scores []float64, best int, cfg Config) (Line, bool) {
	winner := window[best]
	height := winner.Box.Height()
	if height <= 0 {
		return Line{}, false
	}

	for i, line := range window {
		if i == best || line.Page != winner.Page {
			continue
		}
		gap := line.Box.Y0 - winner.Box.Y1
		if gap < 0 || gap > titleContinuationGapRatio*height {
			continue
		}
		if winner.FontSize-line.FontSize > titleContinuationSizeSlack {
			continue
		}
		if wordCount(line.Text) > 10 || scores[i] < cfg.TitleThreshold/2 {
			continue
		}
		return line, true
	}

	return Line{}, false
}
