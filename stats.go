package pdfoutline

import (
	"math"
	"sort"
)

// SizeLevel is one distinct font size observed in a document, annotated with
// how much text it covers.
type SizeLevel struct {
	Size  float64
	Chars int // total printable characters set at this size
	Lines int // number of lines whose dominant size this is
}

// DocumentStatistics is an immutable snapshot of document-wide typographic
// baselines, computed once per document and passed explicitly into every
// downstream scoring call. It is never shared across documents.
type DocumentStatistics struct {
	// BodySize is the font size covering the most characters: the
	// statistical baseline against which headings measure as larger.
	BodySize float64

	// SizeLevels lists the distinct sizes observed, sorted descending.
	SizeLevels []SizeLevel

	// LineGapMedian is the median vertical gap between consecutive lines
	// on the same page, used as the single-line-spacing norm by the
	// isolation signal.
	LineGapMedian float64

	// PageWidths maps page index to width, inferred from line extents
	// when the decoder did not supply page dimensions.
	PageWidths map[int]float64

	// PageCount is the number of pages the decoder reported; zero when
	// unknown.
	PageCount int

	// TotalLines and TotalChars describe the corpus the snapshot was
	// computed from.
	TotalLines int
	TotalChars int
}

// sizeKey quantizes a font size to absorb sub-point float jitter between
// runs of the same nominal size.
func sizeKey(size float64) float64 {
	return math.Round(size*10) / 10
}

// ComputeStatistics computes the DocumentStatistics snapshot over all
// reconstructed lines of one document. Pages may be nil; widths are then
// inferred from the rightmost line extent per page.
func ComputeStatistics(lines []Line, pages []PageInfo) DocumentStatistics {
	stats := DocumentStatistics{
		PageWidths: make(map[int]float64),
		TotalLines: len(lines),
	}

	charsBySize := make(map[float64]int)
	linesBySize := make(map[float64]int)

	for _, line := range lines {
		chars := line.CharCount()
		stats.TotalChars += chars

		key := sizeKey(line.FontSize)
		charsBySize[key] += chars
		linesBySize[key]++

		if line.Box.X1 > stats.PageWidths[line.Page] {
			stats.PageWidths[line.Page] = line.Box.X1
		}
	}

	for _, page := range pages {
		stats.PageWidths[page.Index] = page.Width
		if page.Index+1 > stats.PageCount {
			stats.PageCount = page.Index + 1
		}
	}

	// Body size is the size with the greatest total character weight, not
	// the most lines: one long paragraph outweighs many short headings.
	for size, chars := range charsBySize {
		stats.SizeLevels = append(stats.SizeLevels, SizeLevel{
			Size:  size,
			Chars: chars,
			Lines: linesBySize[size],
		})
		if stats.BodySize == 0 || chars > charsBySize[sizeKey(stats.BodySize)] ||
			(chars == charsBySize[sizeKey(stats.BodySize)] && size < stats.BodySize) {
			stats.BodySize = size
		}
	}

	sort.Slice(stats.SizeLevels, func(i, j int) bool {
		return stats.SizeLevels[i].Size > stats.SizeLevels[j].Size
	})

	stats.LineGapMedian = medianLineGap(lines)
	if stats.LineGapMedian == 0 && stats.BodySize > 0 {
		// Single-line pages give no gap samples; fall back to a typical
		// leading of 0.4x the body size.
		stats.LineGapMedian = stats.BodySize * 0.4
	}

	return stats
}

// medianLineGap computes the median vertical gap between consecutive lines
// sharing a page. Negative gaps (overlapping boxes) are discarded.
func medianLineGap(lines []Line) float64 {
	byPage := make(map[int][]Line)
	for _, line := range lines {
		byPage[line.Page] = append(byPage[line.Page], line)
	}

	var gaps []float64
	for _, pageLines := range byPage {
		sort.Slice(pageLines, func(i, j int) bool {
			return pageLines[i].Box.Y0 < pageLines[j].Box.Y0
		})
		for i := 1; i < len(pageLines); i++ {
			gap := pageLines[i].Box.Y0 - pageLines[i-1].Box.Y1
			if gap >= 0 {
				gaps = append(gaps, gap)
			}
		}
	}

	return calculateMedian(gaps)
}

// pageWidth returns the recorded width for a page, or 0 when unknown.
func (s DocumentStatistics) pageWidth(page int) float64 {
	return s.PageWidths[page]
}

// sizeRank returns the 0-based rank of a size among the distinct sizes,
// largest first, or -1 when the size was never observed.
func (s DocumentStatistics) sizeRank(size float64) int {
	key := sizeKey(size)
	for i, level := range s.SizeLevels {
		if level.Size == key {
			return i
		}
	}
	return -1
}

// calculateMedian calculates the median value of a float64 slice.
func calculateMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// calculateStdDev calculates the standard deviation of a float64 slice.
func calculateStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := average(values)
	var sumSquares float64
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

// average calculates the average of a slice of floats.
func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// clamp restricts a value to a range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// mergeRects merges two rectangles into their bounding box.
func mergeRects(r1, r2 Rect) Rect {
	return Rect{
		X0: math.Min(r1.X0, r2.X0),
		Y0: math.Min(r1.Y0, r2.Y0),
		X1: math.Max(r1.X1, r2.X1),
		Y1: math.Max(r1.Y1, r2.Y1),
	}
}
