package pdfoutline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.TitleWindowPages)
	assert.Equal(t, 4.0, cfg.TitleThreshold)
	assert.Equal(t, 2.0, cfg.HeadingThreshold)
	assert.True(t, cfg.NumberingPrecedence)
	assert.False(t, cfg.EnableMetricsLogging)
}

func TestOutlineToMarkdown(t *testing.T) {
	outline := Outline{
		Title: "Service Handbook",
		Entries: []OutlineEntry{
			{Level: H1, Text: "1. Getting Started", Page: 0},
			{Level: H2, Text: "1.1 Accounts", Page: 1},
			{Level: H4, Text: "Fine Print", Page: 3},
		},
	}

	md := outline.ToMarkdown()

	assert.Contains(t, md, "# Service Handbook")
	// Entries render one markdown level below their outline level so the
	// title keeps the top slot.
	assert.Contains(t, md, "## 1. Getting Started (page 0)")
	assert.Contains(t, md, "### 1.1 Accounts (page 1)")
	assert.Contains(t, md, "##### Fine Print (page 3)")
}

func TestOutlineToMarkdown_NoTitle(t *testing.T) {
	outline := Outline{
		Entries: []OutlineEntry{
			{Level: H1, Text: "Overview", Page: 0},
		},
	}

	md := outline.ToMarkdown()

	assert.False(t, strings.Contains(md, "# \n") || strings.HasPrefix(md, "# "),
		"untitled outline must not render an empty H1")
	assert.Contains(t, md, "## Overview (page 0)")
}
