package pdfoutline

import (
	"math"
	"testing"
)

func TestComputeStatistics_BodySizeIsCharWeighted(t *testing.T) {
	// One long paragraph line outweighs several short heading lines of a
	// different size, even though the headings win on line count.
	lines := []Line{
		testLine("Intro", 16, true, 0, 72, 72),
		testLine("Scope", 16, true, 0, 72, 100),
		testLine("Goals", 16, true, 0, 72, 128),
		testLine("This single paragraph line carries far more characters than all headings combined.", 11, false, 0, 72, 160),
	}

	stats := ComputeStatistics(lines, nil)

	if stats.BodySize != 11 {
		t.Errorf("BodySize = %v, want 11", stats.BodySize)
	}
	if stats.TotalLines != 4 {
		t.Errorf("TotalLines = %d, want 4", stats.TotalLines)
	}
}

func TestComputeStatistics_SizeLevelsDescending(t *testing.T) {
	lines := []Line{
		testLine("Big", 24, false, 0, 72, 72),
		testLine("Medium", 16, false, 0, 72, 110),
		testLine("Small body text to weigh things down", 11, false, 0, 72, 140),
	}

	stats := ComputeStatistics(lines, nil)

	if len(stats.SizeLevels) != 3 {
		t.Fatalf("len(SizeLevels) = %d, want 3", len(stats.SizeLevels))
	}
	for i := 1; i < len(stats.SizeLevels); i++ {
		if stats.SizeLevels[i].Size >= stats.SizeLevels[i-1].Size {
			t.Errorf("SizeLevels not descending: %v", stats.SizeLevels)
		}
	}

	if got := stats.sizeRank(24); got != 0 {
		t.Errorf("sizeRank(24) = %d, want 0", got)
	}
	if got := stats.sizeRank(11); got != 2 {
		t.Errorf("sizeRank(11) = %d, want 2", got)
	}
	if got := stats.sizeRank(99); got != -1 {
		t.Errorf("sizeRank(99) = %d, want -1", got)
	}
}

func TestComputeStatistics_SingleSizeDocument(t *testing.T) {
	lines := []Line{
		testLine("Everything in this document", 12, false, 0, 72, 72),
		testLine("is set in the same size", 12, false, 0, 72, 100),
	}

	stats := ComputeStatistics(lines, nil)

	if stats.BodySize != 12 {
		t.Errorf("BodySize = %v, want 12", stats.BodySize)
	}
	if len(stats.SizeLevels) != 1 {
		t.Errorf("len(SizeLevels) = %d, want 1", len(stats.SizeLevels))
	}
}

func TestComputeStatistics_QuantizesFloatJitter(t *testing.T) {
	// Sub-point size jitter between runs of the same nominal size must
	// not split a size level.
	lines := []Line{
		testLine("First line of text here", 11.98, false, 0, 72, 72),
		testLine("Second line of text here", 12.02, false, 0, 72, 100),
	}

	stats := ComputeStatistics(lines, nil)

	if len(stats.SizeLevels) != 1 {
		t.Errorf("len(SizeLevels) = %d, want 1 (12.0 after quantization)", len(stats.SizeLevels))
	}
	if stats.BodySize != 12 {
		t.Errorf("BodySize = %v, want 12", stats.BodySize)
	}
}

func TestComputeStatistics_PageWidths(t *testing.T) {
	lines := []Line{
		testLine("A line", 12, false, 0, 72, 72),
	}
	pages := []PageInfo{{Index: 0, Width: 612, Height: 792}}

	stats := ComputeStatistics(lines, pages)

	if got := stats.pageWidth(0); got != 612 {
		t.Errorf("pageWidth(0) = %v, want 612 (decoder-supplied width wins)", got)
	}
	if stats.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", stats.PageCount)
	}

	// Without page info the width falls back to the rightmost extent.
	inferred := ComputeStatistics(lines, nil)
	if got := inferred.pageWidth(0); math.Abs(got-lines[0].Box.X1) > 0.001 {
		t.Errorf("inferred pageWidth(0) = %v, want %v", got, lines[0].Box.X1)
	}
}

func TestMedianLineGap(t *testing.T) {
	lines := []Line{
		testLine("a", 12, false, 0, 72, 72),  // box 72-84
		testLine("b", 12, false, 0, 72, 88),  // gap 4
		testLine("c", 12, false, 0, 72, 108), // gap 8
	}

	got := medianLineGap(lines)
	if math.Abs(got-6) > 0.001 {
		t.Errorf("medianLineGap = %v, want 6", got)
	}

	// Overlapping boxes produce negative gaps, which are discarded rather
	// than dragging the median down.
	overlapping := append(lines, testLine("d", 12, false, 0, 72, 80))
	got = medianLineGap(overlapping)
	if got <= 0 {
		t.Errorf("medianLineGap with overlap = %v, want positive", got)
	}
}

func TestCalculateMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"odd count", []float64{3, 1, 2}, 2},
		{"even count", []float64{4, 1, 3, 2}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateMedian(tt.values); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("calculateMedian(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestCalculateStdDev(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"uniform", []float64{4, 4, 4}, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateStdDev(tt.values); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("calculateStdDev(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}
