package pdfoutline

import (
	"math"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// pageRuns is the decoded content of one page: its typographic runs and the
// page dimensions, both needed by the pipeline.
type pageRuns struct {
	Runs []Run
	Info PageInfo
}

// charInfo is a single decoded character with the metadata run grouping
// needs. Not exported: runs are the unit the pipeline consumes.
type charInfo struct {
	Text     rune
	Box      Rect
	FontSize float64
	FontName string
	Weight   int
	Flags    int
	Fill     RGBA
}

// ExtractPageRuns decodes one page into its ordered typographic runs.
// Coordinates are converted from PDF bottom-left origin to top-left origin.
// A page with no text yields zero runs, which is a valid empty-page result.
func ExtractPageRuns(instance pdfium.Pdfium, page references.FPDF_PAGE, pageIndex int) (*pageRuns, error) {
	pageWidth, err := instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page width")
	}

	pageHeight, err := instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}

	result := &pageRuns{
		Info: PageInfo{
			Index:  pageIndex,
			Width:  float64(pageWidth.PageWidth),
			Height: float64(pageHeight.PageHeight),
		},
	}

	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}
	if charCount.Count == 0 {
		return result, nil
	}

	chars, err := extractChars(instance, textPage.TextPage, charCount.Count, result.Info.Height)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract characters")
	}

	result.Runs = groupCharsIntoRuns(chars, pageIndex)
	return result, nil
}

// extractChars reads every character on the text page with its typographic
// metadata, converting boxes to top-left origin.
func extractChars(instance pdfium.Pdfium, textPage references.FPDF_TEXTPAGE, count int, pageHeight float64) ([]charInfo, error) {
	chars := make([]charInfo, 0, count)

	for i := 0; i < count; i++ {
		unicodeRes, err := instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage,
			Index:    i,
		})
		if err != nil || unicodeRes.Unicode == 0 {
			continue
		}

		charBox, err := instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		box := Rect{
			X0: charBox.Left,
			Y0: pageHeight - charBox.Top,
			X1: charBox.Right,
			Y1: pageHeight - charBox.Bottom,
		}

		fontSizeVal := 12.0 // Default
		if fontSize, err := instance.FPDFText_GetFontSize(&requests.FPDFText_GetFontSize{
			TextPage: textPage,
			Index:    i,
		}); err == nil {
			fontSizeVal = fontSize.FontSize
		}

		weightVal := 400 // Default normal weight
		if fontWeight, err := instance.FPDFText_GetFontWeight(&requests.FPDFText_GetFontWeight{
			TextPage: textPage,
			Index:    i,
		}); err == nil {
			weightVal = fontWeight.FontWeight
		}

		fontNameVal := ""
		fontFlagsVal := 0
		if fontInfo, err := instance.FPDFText_GetFontInfo(&requests.FPDFText_GetFontInfo{
			TextPage: textPage,
			Index:    i,
		}); err == nil {
			fontNameVal = fontInfo.FontName
			fontFlagsVal = fontInfo.Flags
		}

		fillVal := RGBA{R: 0, G: 0, B: 0, A: 255} // Default black
		if fill, err := instance.FPDFText_GetFillColor(&requests.FPDFText_GetFillColor{
			TextPage: textPage,
			Index:    i,
		}); err == nil {
			fillVal = RGBA{R: fill.R, G: fill.G, B: fill.B, A: fill.A}
		}

		chars = append(chars, charInfo{
			Text:     rune(unicodeRes.Unicode),
			Box:      box,
			FontSize: fontSizeVal,
			FontName: fontNameVal,
			Weight:   weightVal,
			Flags:    fontFlagsVal,
			Fill:     fillVal,
		})
	}

	return chars, nil
}

// groupCharsIntoRuns groups consecutive characters sharing font, size and
// baseline into runs. A style change, a baseline jump or a large horizontal
// gap closes the current run.
func groupCharsIntoRuns(chars []charInfo, pageIndex int) []Run {
	if len(chars) == 0 {
		return nil
	}

	var runs []Run
	var current []charInfo

	flush := func() {
		if run, ok := buildRun(current, pageIndex); ok {
			runs = append(runs, run)
		}
		current = nil
	}

	for _, char := range chars {
		if char.Text == '\n' || char.Text == '\r' {
			flush()
			continue
		}
		if len(current) == 0 {
			current = []charInfo{char}
			continue
		}

		prev := current[len(current)-1]
		if !sameStyle(prev, char) || baselineJump(prev, char) || horizontalJump(prev, char) {
			flush()
			current = []charInfo{char}
			continue
		}

		current = append(current, char)
	}
	flush()

	return expandLigatures(runs)
}

// sameStyle reports whether two characters share font identity. Whitespace
// carries no glyph of its own and continues any style.
func sameStyle(a, b charInfo) bool {
	if b.Text == ' ' || b.Text == '\t' || a.Text == ' ' || a.Text == '\t' {
		return true
	}
	return a.FontName == b.FontName &&
		math.Abs(a.FontSize-b.FontSize) < 0.1 &&
		(a.Weight >= boldWeightThreshold) == (b.Weight >= boldWeightThreshold)
}

// baselineJump reports whether the next character left the current baseline.
func baselineJump(a, b charInfo) bool {
	tolerance := baselineToleranceRatio * math.Min(a.FontSize, b.FontSize)
	if tolerance < baselineToleranceFloor {
		tolerance = baselineToleranceFloor
	}
	return math.Abs(charBaseline(a)-charBaseline(b)) >= tolerance
}

// horizontalJump reports whether the gap to the next character exceeds
// normal intra-word/word spacing.
func horizontalJump(a, b charInfo) bool {
	gap := b.Box.X0 - a.Box.X1
	return gap > maxWordGapRatio*math.Min(a.FontSize, b.FontSize)
}

// boldWeightThreshold is the CSS convention: weights of 700 and above render
// bold.
const boldWeightThreshold = 700

// charBaseline estimates the baseline from the character box. The bottom of
// the box sits slightly below the baseline to make room for descenders.
func charBaseline(c charInfo) float64 {
	return c.Box.Y1 - c.FontSize*0.15
}

// buildRun aggregates grouped characters into a Run. Dominant weight and
// font come from the most common values; whitespace-only groups report !ok
// and are dropped.
func buildRun(chars []charInfo, pageIndex int) (Run, bool) {
	if len(chars) == 0 {
		return Run{}, false
	}

	var text []rune
	box := chars[0].Box
	weightCounts := make(map[int]int)
	printable := 0

	for _, char := range chars {
		text = append(text, char.Text)
		box = mergeRects(box, char.Box)
		if char.Text != ' ' && char.Text != '\t' {
			weightCounts[char.Weight]++
			printable++
		}
	}
	if printable == 0 {
		return Run{}, false
	}

	dominantWeight := 400
	maxCount := 0
	for weight, count := range weightCounts {
		if count > maxCount || (count == maxCount && weight > dominantWeight) {
			dominantWeight = weight
			maxCount = count
		}
	}

	first := firstPrintable(chars)
	run := Run{
		Text:      string(text),
		FontName:  first.FontName,
		FontSize:  first.FontSize,
		Bold:      dominantWeight >= boldWeightThreshold,
		Italic:    first.Flags&0x40 != 0, // Italic flag from the PDF spec
		FillColor: first.Fill,
		Box:       box,
		Page:      pageIndex,
	}
	run.Baseline = run.Box.Y1 - run.FontSize*0.15

	return run, true
}

// firstPrintable returns the first non-whitespace character of a group.
func firstPrintable(chars []charInfo) charInfo {
	for _, char := range chars {
		if char.Text != ' ' && char.Text != '\t' {
			return char
		}
	}
	return chars[0]
}

// ligatureMap maps ligature codepoints to their expanded forms.
var ligatureMap = map[rune]string{
	0xFB00: "ff",
	0xFB01: "fi",
	0xFB02: "fl",
	0xFB03: "ffi",
	0xFB04: "ffl",
	0xFB05: "ft",
	0xFB06: "st",
}

// expandLigatures expands ligature characters in run text into their
// component letters so numbering and casing checks see plain ASCII.
func expandLigatures(runs []Run) []Run {
	for i := range runs {
		run := &runs[i]
		hasLigature := false
		for _, r := range run.Text {
			if _, ok := ligatureMap[r]; ok {
				hasLigature = true
				break
			}
		}
		if !hasLigature {
			continue
		}

		var expanded []rune
		for _, r := range run.Text {
			if expansion, ok := ligatureMap[r]; ok {
				expanded = append(expanded, []rune(expansion)...)
			} else {
				expanded = append(expanded, r)
			}
		}
		run.Text = string(expanded)
	}
	return runs
}
