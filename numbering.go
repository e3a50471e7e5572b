package pdfoutline

import (
	"regexp"
	"strings"
)

// Outline numbering gives two signals at once: matching a pattern at all is
// evidence of a heading, and the number of segments is a direct hierarchy
// hint ("1.2.3" sits below "1.2").
var (
	// "1", "1.", "1.2", "1.2.3.", followed by whitespace or end of text.
	decimalNumbering = regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3})*)\.?(?:\s|$)`)

	// "A." / "a)" lettered sections. A bare trailing letter without
	// punctuation is too ambiguous to count.
	letterNumbering = regexp.MustCompile(`^[A-Za-z][.)](?:\s|$)`)

	// "IV." roman numerals, punctuation required for the same reason as
	// letters ("I want..." is prose, "IV." is a section). Uppercase only:
	// lowercase words like "civil." are made entirely of numeral letters.
	romanNumbering = regexp.MustCompile(`^([IVXLC]{1,8})[.)](?:\s|$)`)
)

// numberingDepth returns the hierarchy depth of a leading outline-numbering
// pattern, or 0 when the text carries none. Decimal sections count one depth
// per segment; lettered and roman sections count as depth 1.
func numberingDepth(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if m := decimalNumbering.FindStringSubmatch(text); m != nil {
		// A bare number with no following text ("3", "2024") is a page
		// number or data value, not a section marker.
		rest := strings.TrimSpace(text[len(m[0]):])
		if rest == "" {
			return 0
		}
		return strings.Count(m[1], ".") + 1
	}

	if m := romanNumbering.FindStringSubmatch(text); m != nil {
		if isRomanNumeral(m[1]) && strings.TrimSpace(text[len(m[0]):]) != "" {
			return 1
		}
	}

	if m := letterNumbering.FindString(text); m != "" {
		if strings.TrimSpace(text[len(m):]) != "" {
			return 1
		}
	}

	return 0
}

// isRomanNumeral reports whether s is a plausible roman numeral. The regexp
// alone would accept strings like "XXXXXX"; this checks basic composition.
func isRomanNumeral(s string) bool {
	s = strings.ToUpper(s)
	valid := "IVXLC"
	repeat := 0
	var prev rune
	for _, c := range s {
		if !strings.ContainsRune(valid, c) {
			return false
		}
		if c == prev {
			repeat++
			if repeat >= 4 {
				return false
			}
		} else {
			repeat = 1
		}
		prev = c
	}
	return len(s) > 0
}
