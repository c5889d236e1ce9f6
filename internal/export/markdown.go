package export

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarform/internal/cite"
	"github.com/pdiddy/scholarform/internal/layout"
	"github.com/pdiddy/scholarform/internal/segment"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// frontmatter is the YAML header of a Markdown export.
type frontmatter struct {
	Title       string              `yaml:"title"`
	Author      string              `yaml:"author,omitempty"`
	Course      string              `yaml:"course,omitempty"`
	Instructor  string              `yaml:"instructor,omitempty"`
	Institution string              `yaml:"institution,omitempty"`
	Date        string              `yaml:"date,omitempty"`
	Style       types.AcademicStyle `yaml:"style"`
	PaperSize   types.PaperSize     `yaml:"paper_size,omitempty"`
}

// Markdown encodes doc as Markdown with YAML frontmatter. Sections are
// level-one headings, block subtitles level-two headings, and citations a
// bullet list with italics in asterisks. With the index enabled a table of
// contents lists the print page of each section.
func Markdown(doc types.Document) (Result, error) {
	fm, err := yaml.Marshal(frontmatter{
		Title:       doc.Metadata.Title,
		Author:      doc.Metadata.Author,
		Course:      doc.Metadata.Course,
		Instructor:  doc.Metadata.Instructor,
		Institution: doc.Metadata.Institution,
		Date:        doc.Metadata.Date,
		Style:       style.For(doc.Style).Style,
		PaperSize:   doc.PaperSize,
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	plan := layout.Compute(doc)
	byID := make(map[string]types.Section, len(doc.Sections))
	for _, s := range doc.Sections {
		byID[s.ID] = s
	}
	heading := style.BibliographyHeading(doc.Style)

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")

	if plan.HasTOC() {
		b.WriteString("## Table of Contents\n\n")
		for _, id := range plan.SectionOrder {
			fmt.Fprintf(&b, "- %s (p. %d)\n", byID[id].Title, plan.PageOf(id))
		}
		fmt.Fprintf(&b, "- %s (p. %d)\n\n", heading, plan.BibliographyPage)
	}

	for _, id := range plan.SectionOrder {
		s := byID[id]
		fmt.Fprintf(&b, "# %s\n\n", oneLine(s.Title))
		for _, block := range s.Content {
			if block.Subtitle != "" {
				fmt.Fprintf(&b, "## %s\n\n", oneLine(block.Subtitle))
			}
			for _, para := range segment.Paragraphs(block.Text) {
				b.WriteString(para)
				b.WriteString("\n\n")
			}
		}
	}

	fmt.Fprintf(&b, "# %s\n\n", heading)
	for _, c := range cite.Sorted(doc.Bibliography) {
		fmt.Fprintf(&b, "- %s\n", cite.FormatRuns(c, doc.Style).Markdown())
	}

	return Result{Data: b.Bytes(), MIMEType: "text/markdown", Filename: Filename(doc, ".md")}, nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
