package pdfoutline

import (
	"math"
	"testing"
)

func statsWithBodySize(size float64) DocumentStatistics {
	return DocumentStatistics{
		BodySize:      size,
		LineGapMedian: size * 0.4,
		PageWidths:    map[int]float64{},
	}
}

func TestSizeRatioSignal(t *testing.T) {
	stats := statsWithBodySize(12)

	tests := []struct {
		name string
		size float64
		min  float64
		max  float64
	}{
		{"body size scores zero", 12, 0, 0},
		{"slightly larger still zero", 13, 0, 0},
		{"moderately larger scores positively", 16, 0.2, 0.6},
		{"twice body size hits the cap", 24, 1, 1},
		{"smaller than body scores zero", 9, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sizeRatioSignal(testLine("Heading", tt.size, false, 0, 72, 72), stats)
			if got < tt.min || got > tt.max {
				t.Errorf("sizeRatioSignal(size=%v) = %v, want in [%v, %v]", tt.size, got, tt.min, tt.max)
			}
		})
	}
}

func TestSizeRatioSignal_Monotonic(t *testing.T) {
	stats := statsWithBodySize(12)
	prev := -1.0
	for size := 12.0; size <= 30; size += 0.5 {
		got := sizeRatioSignal(testLine("Heading", size, false, 0, 72, 72), stats)
		if got < prev {
			t.Fatalf("sizeRatioSignal not monotonic: size %v scored %v after %v", size, got, prev)
		}
		prev = got
	}
}

func TestSizeRatioSignal_DegenerateBody(t *testing.T) {
	// A document with no size statistics falls back to non-size signals.
	got := sizeRatioSignal(testLine("Heading", 16, false, 0, 72, 72), DocumentStatistics{})
	if got != 0 {
		t.Errorf("sizeRatioSignal with zero body size = %v, want 0", got)
	}
}

func TestWeightSignal(t *testing.T) {
	if got := weightSignal(testLine("Bold", 12, true, 0, 72, 72)); got != 1 {
		t.Errorf("weightSignal(bold) = %v, want 1", got)
	}
	if got := weightSignal(testLine("Plain", 12, false, 0, 72, 72)); got != 0 {
		t.Errorf("weightSignal(plain) = %v, want 0", got)
	}
}

func TestNumberingSignal_ShallowerScoresHigher(t *testing.T) {
	shallow := numberingSignal(testLine("1. Introduction", 12, false, 0, 72, 72))
	deep := numberingSignal(testLine("1.2.3.4 Detail", 12, false, 0, 72, 72))
	none := numberingSignal(testLine("Introduction", 12, false, 0, 72, 72))

	if shallow <= deep {
		t.Errorf("depth-1 signal %v should exceed depth-4 signal %v", shallow, deep)
	}
	if deep <= 0 {
		t.Errorf("deep numbering should still score positively, got %v", deep)
	}
	if none != 0 {
		t.Errorf("unnumbered line scored %v, want 0", none)
	}
}

func TestIsolationSignal(t *testing.T) {
	stats := statsWithBodySize(12) // norm 4.8, isolation threshold 8.64

	tests := []struct {
		name     string
		gaps     lineGaps
		expected float64
	}{
		{"both sides isolated", lineGaps{before: 20, after: 20}, 1.0},
		{"only before", lineGaps{before: 20, after: 2}, 0.5},
		{"only after", lineGaps{before: 2, after: 20}, 0.5},
		{"tight both sides", lineGaps{before: 2, after: 2}, 0},
		{"page edges count as isolation", lineGaps{before: -1, after: -1}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isolationSignal(tt.gaps, stats)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("isolationSignal(%+v) = %v, want %v", tt.gaps, got, tt.expected)
			}
		})
	}
}

func TestCasingSignal(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"all caps", "TABLE OF CONTENTS", 1},
		{"title case", "Getting Started Guide", 0.6},
		{"numbered title case", "1.1 Overview", 0.6},
		{"sentence case", "the quick brown fox", 0},
		{"mixed case prose", "This sentence keeps going", 0},
		{"long prose with period", "This is a long sentence that clearly reads as prose, not a heading.", -1},
		{"short label with period", "see fig. 1", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := testLine(tt.text, 12, false, 0, 72, 72)
			if got := casingSignal(line); got != tt.expected {
				t.Errorf("casingSignal(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestLengthSignal(t *testing.T) {
	long := make([]byte, 130)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"normal heading", "Introduction", 0},
		{"single character", "A", -1},
		{"paragraph-length line", string(long), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := testLine(tt.text, 12, false, 0, 72, 72)
			if got := lengthSignal(line); got != tt.expected {
				t.Errorf("lengthSignal(len=%d) = %v, want %v", len(tt.text), got, tt.expected)
			}
		})
	}
}

func TestScoreHeadings_RejectsProse(t *testing.T) {
	lines := []Line{
		testLine("2. Methods", 16, true, 0, 72, 72),
		testLine("This paragraph describes the methods in unremarkable detail and prose.", 11, false, 0, 72, 120),
	}
	stats := ComputeStatistics(lines, nil)

	candidates := ScoreHeadings(lines, stats, DefaultConfig())

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Line.Text != "2. Methods" {
		t.Errorf("accepted wrong line: %q", candidates[0].Line.Text)
	}
	if candidates[0].NumberingDepth != 1 {
		t.Errorf("NumberingDepth = %d, want 1", candidates[0].NumberingDepth)
	}
	if candidates[0].Score <= DefaultConfig().HeadingThreshold {
		t.Errorf("candidate score %v should exceed threshold", candidates[0].Score)
	}
}

func TestNeighborGaps(t *testing.T) {
	lines := []Line{
		testLine("First", 12, false, 0, 72, 72),   // box 72-84
		testLine("Second", 12, false, 0, 72, 100), // box 100-112
		testLine("Other page", 12, false, 1, 72, 50),
	}

	gaps := neighborGaps(lines)

	if gaps[0].before != -1 {
		t.Errorf("first line before-gap = %v, want -1", gaps[0].before)
	}
	if math.Abs(gaps[0].after-16) > 0.001 {
		t.Errorf("first line after-gap = %v, want 16", gaps[0].after)
	}
	if math.Abs(gaps[1].before-16) > 0.001 {
		t.Errorf("second line before-gap = %v, want 16", gaps[1].before)
	}
	if gaps[2].before != -1 || gaps[2].after != -1 {
		t.Errorf("single line on page should have no neighbors, got %+v", gaps[2])
	}
}
