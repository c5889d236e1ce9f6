// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite renders citation records as style-specific reference strings
// and defines the presentation order of a bibliography.
package cite

import (
	"strings"

	"github.com/pdiddy/scholarform/pkg/types"
)

// Run is a span of citation text with uniform emphasis.
type Run struct {
	Text   string
	Italic bool
}

// Runs is a formatted citation split into emphasis spans. Export targets
// walk the runs to express italics in their own markup.
type Runs []Run

// Plain returns the citation text without any emphasis markup.
func (rs Runs) Plain() string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Markup returns the citation with italic spans wrapped in <i></i>.
func (rs Runs) Markup() string {
	return rs.wrap("<i>", "</i>")
}

// Markdown returns the citation with italic spans wrapped in asterisks.
func (rs Runs) Markdown() string {
	return rs.wrap("*", "*")
}

func (rs Runs) wrap(open, close string) string {
	var b strings.Builder
	for _, r := range rs {
		if r.Italic && r.Text != "" {
			b.WriteString(open)
			b.WriteString(r.Text)
			b.WriteString(close)
			continue
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

// Format renders c in style s with italic spans as <i></i> markup.
func Format(c types.Citation, s types.AcademicStyle) string {
	return FormatRuns(c, s).Markup()
}

// FormatRuns renders c in style s as emphasis runs. Unknown styles use the
// Custom form "Authors. (Year). Title."
func FormatRuns(c types.Citation, s types.AcademicStyle) Runs {
	authors := AuthorString(c.Authors)
	var rs runBuilder

	switch s {
	case types.StyleAPA:
		rs.plain(authors + " (" + c.Year + "). " + terminate(c.Title) + " ")
		rs.italic(c.Source)
		if c.Location != "" {
			rs.plain(", " + c.Location)
		}
		rs.plain(".")
		if c.Note != "" {
			rs.plain(" " + c.Note)
		}

	case types.StyleMLA:
		rs.plain(terminate(authors) + ` "` + terminate(c.Title) + `" `)
		rs.italic(c.Source)
		rs.plain(", " + c.Year)
		if c.Location != "" {
			rs.plain(", " + c.Location)
		}
		rs.plain(".")
		if c.Note != "" {
			rs.plain(" " + c.Note)
		}

	case types.StyleChicago:
		rs.plain(terminate(authors) + " " + c.Year + `. "` + terminate(c.Title) + `" `)
		rs.italic(c.Source)
		rs.plain(".")
		if c.Location != "" {
			rs.plain(" " + terminate(c.Location))
		}
		if c.Note != "" {
			rs.plain(" " + c.Note)
		}

	default:
		rs.plain(terminate(authors) + " (" + c.Year + "). " + terminate(c.Title))
	}

	return rs.runs
}

// AuthorString joins authors as "A, B & C". A single author is returned
// unchanged.
func AuthorString(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	}
	last := len(authors) - 1
	return strings.Join(authors[:last], ", ") + " & " + authors[last]
}

// terminate appends a period unless s already ends a sentence.
func terminate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '?', '!':
		return s
	}
	return s + "."
}

// runBuilder merges adjacent runs with the same emphasis.
type runBuilder struct {
	runs Runs
}

func (b *runBuilder) plain(s string)  { b.add(Run{Text: s}) }
func (b *runBuilder) italic(s string) { b.add(Run{Text: s, Italic: true}) }

func (b *runBuilder) add(r Run) {
	if r.Text == "" {
		return
	}
	if n := len(b.runs); n > 0 && b.runs[n-1].Italic == r.Italic {
		b.runs[n-1].Text += r.Text
		return
	}
	b.runs = append(b.runs, r)
}
