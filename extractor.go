package pdfoutline

import (
	"io"
	"log"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// Config controls outline inference behavior.
type Config struct {
	// TitleWindowPages is how many opening pages are searched for the
	// document title (default: 2).
	TitleWindowPages int

	// TitleThreshold is the minimum title score; the best candidate below
	// it yields an empty title (default: 4.0).
	TitleThreshold float64

	// HeadingThreshold is the minimum headingness score for a line to be
	// accepted as an outline candidate (default: 2.0).
	HeadingThreshold float64

	// NumberingPrecedence makes numbering depth win over size clustering
	// when the two level signals disagree (default: true). Numbering is a
	// document-authored signal; font size can vary for unrelated emphasis
	// reasons.
	NumberingPrecedence bool

	// EnableMetricsLogging enables processing time and statistics logging
	// (default: false).
	EnableMetricsLogging bool
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() Config {
	return Config{
		TitleWindowPages:    2,
		TitleThreshold:      4.0,
		HeadingThreshold:    2.0,
		NumberingPrecedence: true,
	}
}

// ProcessingMetrics contains timing and statistics for one extraction.
type ProcessingMetrics struct {
	TotalTime       time.Duration
	DocumentOpen    time.Duration
	PageExtractions []PageMetrics
	Statistics      OutlineStatistics
}

// PageMetrics contains timing for a single page.
type PageMetrics struct {
	PageNumber int
	Duration   time.Duration
}

// OutlineStatistics contains document-level statistics for one extraction.
type OutlineStatistics struct {
	TotalPages    int
	TotalRuns     int
	TotalLines    int
	TotalHeadings int
	BodyFontSize  float64
	HasTitle      bool
}

// Extractor infers document outlines from PDFs using pdfium text extraction.
type Extractor struct {
	instance pdfium.Pdfium
	config   Config
}

// NewExtractor creates an outline extractor with default configuration.
func NewExtractor(instance pdfium.Pdfium) *Extractor {
	return &Extractor{
		instance: instance,
		config:   DefaultConfig(),
	}
}

// NewExtractorWithConfig creates an outline extractor with custom configuration.
func NewExtractorWithConfig(instance pdfium.Pdfium, config Config) *Extractor {
	return &Extractor{
		instance: instance,
		config:   config,
	}
}

// ExtractFile extracts the outline of a PDF file.
func (e *Extractor) ExtractFile(filePath string) (*Outline, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	outline, _, err := e.extractDocument(doc.Document)
	return outline, err
}

// ExtractBytes extracts the outline of a PDF held in memory.
func (e *Extractor) ExtractBytes(pdfBytes []byte) (*Outline, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		File: &pdfBytes,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	outline, _, err := e.extractDocument(doc.Document)
	return outline, err
}

// ExtractReader extracts the outline of a PDF from an io.ReadSeeker.
func (e *Extractor) ExtractReader(reader io.ReadSeeker) (*Outline, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FileReader: reader,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	outline, _, err := e.extractDocument(doc.Document)
	return outline, err
}

// ExtractFileWithMetrics extracts an outline and returns processing metrics
// alongside it.
func (e *Extractor) ExtractFileWithMetrics(filePath string) (*Outline, ProcessingMetrics, error) {
	openStart := time.Now()

	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, ProcessingMetrics{}, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	documentOpenTime := time.Since(openStart)

	outline, metrics, err := e.extractDocument(doc.Document)
	if err != nil {
		return nil, ProcessingMetrics{}, err
	}
	metrics.DocumentOpen = documentOpenTime

	return outline, metrics, nil
}

// extractDocument runs run extraction over every page and then the inference
// pipeline over the whole document.
func (e *Extractor) extractDocument(docRef references.FPDF_DOCUMENT) (*Outline, ProcessingMetrics, error) {
	startTime := time.Now()

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: docRef,
	})
	if err != nil {
		return nil, ProcessingMetrics{}, errors.Wrap(err, "failed to get page count")
	}

	var runs []Run
	pages := make([]PageInfo, 0, pageCount.PageCount)
	var pageMetrics []PageMetrics

	for i := 0; i < pageCount.PageCount; i++ {
		pageStart := time.Now()
		page, err := e.extractPage(docRef, i)
		pageDuration := time.Since(pageStart)

		if err != nil {
			return nil, ProcessingMetrics{}, errors.Wrapf(err, "failed to extract page %d", i+1)
		}
		runs = append(runs, page.Runs...)
		pages = append(pages, page.Info)

		pageMetrics = append(pageMetrics, PageMetrics{
			PageNumber: i + 1,
			Duration:   pageDuration,
		})

		if e.config.EnableMetricsLogging {
			log.Printf("Page %d/%d extracted in %v", i+1, pageCount.PageCount, pageDuration)
		}
	}

	lines := ReconstructLines(runs)
	stats := ComputeStatistics(lines, pages)

	outline, err := buildOutlineFromLines(lines, stats, e.config)
	if err != nil {
		return nil, ProcessingMetrics{}, errors.Wrap(err, "failed to build outline")
	}

	metrics := ProcessingMetrics{
		TotalTime:       time.Since(startTime),
		PageExtractions: pageMetrics,
		Statistics: OutlineStatistics{
			TotalPages:    pageCount.PageCount,
			TotalRuns:     len(runs),
			TotalLines:    stats.TotalLines,
			TotalHeadings: len(outline.Entries),
			BodyFontSize:  stats.BodySize,
			HasTitle:      outline.Title != "",
		},
	}

	if e.config.EnableMetricsLogging {
		logProcessingMetrics(metrics, outline)
	}

	return outline, metrics, nil
}

// extractPage loads a single page and extracts its runs.
func (e *Extractor) extractPage(docRef references.FPDF_DOCUMENT, pageIndex int) (*pageRuns, error) {
	pageResp, err := e.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: docRef,
		Index:    pageIndex,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page")
	}
	defer e.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: pageResp.Page,
	})

	return ExtractPageRuns(e.instance, pageResp.Page, pageIndex)
}

// GetDocumentInfo returns basic information about a PDF without extracting it.
func (e *Extractor) GetDocumentInfo(filePath string) (*DocumentInfo, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	return &DocumentInfo{
		PageCount: pageCount.PageCount,
	}, nil
}

// DocumentInfo contains basic information about a PDF document.
type DocumentInfo struct {
	PageCount int
}

// logProcessingMetrics logs the processing metrics in a readable format.
func logProcessingMetrics(metrics ProcessingMetrics, outline *Outline) {
	log.Println("┌─────────────────────────────────────────────┐")
	log.Println("│ Outline Extraction Metrics                  │")
	log.Println("├─────────────────────────────────────────────┤")
	log.Printf("│ Total Time: %-31v │\n", metrics.TotalTime.Round(time.Millisecond))
	log.Println("├─────────────────────────────────────────────┤")
	log.Printf("│   Pages:     %-30d │\n", metrics.Statistics.TotalPages)
	log.Printf("│   Runs:      %-30d │\n", metrics.Statistics.TotalRuns)
	log.Printf("│   Lines:     %-30d │\n", metrics.Statistics.TotalLines)
	log.Printf("│   Headings:  %-30d │\n", metrics.Statistics.TotalHeadings)
	log.Printf("│   Body size: %-30.1f │\n", metrics.Statistics.BodyFontSize)
	log.Printf("│   Has title: %-30v │\n", metrics.Statistics.HasTitle)

	for level, count := range outline.totalByLevel() {
		log.Printf("│   %s:        %-30d │\n", level, count)
	}

	log.Println("└─────────────────────────────────────────────┘")
}
