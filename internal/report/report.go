// Package report renders evaluation results as markdown or HTML documents.
// Rendering is deterministic template expansion; no LLM calls.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cinchlabs/cmseval/internal/models"
	"github.com/yuin/goldmark"
)

// DefaultTitle is used when the caller passes an empty title.
const DefaultTitle = "CMS Evaluation Report"

// ErrDocxUnavailable is returned by Docx when no document builder was
// configured. A missing optional collaborator is a capability error, not a
// crash.
var ErrDocxUnavailable = errors.New("docx output requires a document builder; none configured")

// DocBuilder is the optional collaborator behind Docx output.
type DocBuilder interface {
	Build(w io.Writer, markdown string) error
}

// Generator renders reports. The zero value is usable; Now is overridable
// for deterministic output in tests.
type Generator struct {
	// Now supplies the generation timestamp; defaults to time.Now.
	Now func() time.Time

	// Docs enables Docx output when non-nil.
	Docs DocBuilder
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Markdown renders the assessments and recommendations as a markdown report.
func (g *Generator) Markdown(evaluations []models.PlatformAssessment, recommendations []string, title string) string {
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", g.now().Format(time.RFC3339))

	b.WriteString("## Executive Summary\n")
	b.WriteString("Evaluation of CMS platforms against business and technical requirements.\n\n")

	b.WriteString("## Platform Assessments\n\n")
	for _, eval := range evaluations {
		fmt.Fprintf(&b, "### %s\n", eval.Platform)
		fmt.Fprintf(&b, "**Overall Fit:** %.2f/1.0\n\n", eval.OverallFitScore)

		b.WriteString("**Strengths:**\n")
		for _, s := range eval.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n**Weaknesses:**\n")
		for _, w := range eval.Weaknesses {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		fmt.Fprintf(&b, "\n**Best for:** %s\n\n", eval.BestForUseCase)
	}

	b.WriteString("## Recommendations\n\n")
	for _, r := range recommendations {
		fmt.Fprintf(&b, "**%s**\n\n", r)
	}

	return b.String()
}

// HTML renders the markdown report through goldmark.
func (g *Generator) HTML(evaluations []models.PlatformAssessment, recommendations []string, title string) (string, error) {
	md := g.Markdown(evaluations, recommendations, title)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("report: rendering HTML: %w", err)
	}
	return buf.String(), nil
}

// Docx writes a DOCX rendition through the configured builder, or reports
// ErrDocxUnavailable when there is none.
func (g *Generator) Docx(w io.Writer, evaluations []models.PlatformAssessment, recommendations []string, title string) error {
	if g.Docs == nil {
		return ErrDocxUnavailable
	}
	return g.Docs.Build(w, g.Markdown(evaluations, recommendations, title))
}
