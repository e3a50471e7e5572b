package pdfoutline

import "testing"

func TestNumberingDepth(t *testing.T) {
	tests := []struct {
		text  string
		depth int
	}{
		{"1. Introduction", 1},
		{"1 Introduction", 1},
		{"2.3 Audience", 2},
		{"2.3. Audience", 2},
		{"1.2.3 Detail", 3},
		{"1.2.3.4 Deep", 4},
		{"10.20.30 Wide Segments", 3},
		{"A. Appendix", 1},
		{"a) first item", 1},
		{"IV. Results", 1},
		{"XII) Summary", 1},

		// Not numbering.
		{"Introduction", 0},
		{"", 0},
		{"3", 0},          // bare page number
		{"2024", 0},       // bare year
		{"1.", 0},         // marker with no heading text
		{"A.", 0},         // same for letters
		{"civil. law", 0}, // lowercase word, not a roman numeral
		{"I want to say something", 0},
		{"1.5x faster processing", 0},
		{"VIIIIIIII. not roman", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := numberingDepth(tt.text); got != tt.depth {
				t.Errorf("numberingDepth(%q) = %d, want %d", tt.text, got, tt.depth)
			}
		})
	}
}

func TestIsRomanNumeral(t *testing.T) {
	valid := []string{"I", "IV", "IX", "XII", "XL", "C"}
	for _, s := range valid {
		if !isRomanNumeral(s) {
			t.Errorf("isRomanNumeral(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "ABC", "IIII" + "I", "XXXXX"}
	for _, s := range invalid {
		if isRomanNumeral(s) {
			t.Errorf("isRomanNumeral(%q) = true, want false", s)
		}
	}
}
