package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/ivanvanderbyl/pdfoutline"
)

func main() {
	cmd := &cli.Command{
		Name:  "pdfoutline",
		Usage: "Extract document outlines (title + H1-H4 headings) from PDF files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input PDF file or directory of PDFs",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for per-file results (default: stdout for single files)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: json or markdown",
				Value: "json",
			},
			&cli.IntFlag{
				Name:  "title-pages",
				Usage: "Number of opening pages searched for the title",
				Value: 2,
			},
			&cli.BoolFlag{
				Name:  "size-precedence",
				Usage: "Prefer size clustering over numbering depth for level assignment",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Log per-page timing and document statistics",
			},
		},
		Action: extractOutlines,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func extractOutlines(_ context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")
	outputDir := cmd.String("output")
	format := cmd.String("format")

	if format != "json" && format != "markdown" {
		return fmt.Errorf("unknown format %q", format)
	}

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	config := pdfoutline.DefaultConfig()
	config.TitleWindowPages = cmd.Int("title-pages")
	config.NumberingPrecedence = !cmd.Bool("size-precedence")
	config.EnableMetricsLogging = cmd.Bool("metrics")

	extractor := pdfoutline.NewExtractorWithConfig(instance, config)

	files, err := collectInputs(inputPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found at %s", inputPath)
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// A failing document must not abort the batch: log it, skip it, keep
	// going. Retrying is pointless since extraction is deterministic.
	failed := 0
	for _, file := range files {
		if err := processFile(extractor, file, outputDir, format); err != nil {
			log.Printf("✗ %s: %v", filepath.Base(file), err)
			failed++
			if outputDir != "" && format == "json" {
				writeErrorMarker(file, outputDir, err)
			}
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s\n", filepath.Base(file))
	}

	if failed == len(files) {
		return fmt.Errorf("all %d documents failed", failed)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d documents failed\n", failed, len(files))
	}
	return nil
}

// collectInputs expands a file or directory path into the list of PDFs to
// process.
func collectInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}

// processFile extracts one document and writes its result. JSON output is
// validated against the outline schema before it is emitted.
func processFile(extractor *pdfoutline.Extractor, file, outputDir, format string) error {
	outline, err := extractor.ExtractFile(file)
	if err != nil {
		return err
	}

	var data []byte
	var ext string
	switch format {
	case "markdown":
		data = []byte(outline.ToMarkdown())
		ext = ".md"
	default:
		data, err = json.MarshalIndent(outline, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize outline: %w", err)
		}
		if err := pdfoutline.ValidateOutlineJSON(data); err != nil {
			return err
		}
		data = append(data, '\n')
		ext = ".json"
	}

	if outputDir == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	outPath := filepath.Join(outputDir, base+ext)
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writeErrorMarker writes a valid-but-empty outline document recording the
// failure, so downstream consumers see one output per input file.
func writeErrorMarker(file, outputDir string, cause error) {
	marker := pdfoutline.Outline{Title: fmt.Sprintf("Error: %v", cause)}
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return
	}
	data = append(data, '\n')

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	outPath := filepath.Join(outputDir, base+".json")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Printf("failed to write error marker for %s: %v", filepath.Base(file), err)
	}
}
