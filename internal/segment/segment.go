// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits extracted text into an ordered tree of sections,
// each holding content blocks in reading order. Header recognition is a
// cascade of named matchers tried in declared priority order.
package segment

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scholarform/pkg/types"
)

const (
	introductionTitle = "Introduction"
	fallbackTitle     = "Content"
)

// HeaderMatch describes a recognised header line.
type HeaderMatch struct {
	// Matcher is the name of the matcher that recognised the line.
	Matcher string

	// Title is the line with any markup marker removed.
	Title string
}

// Matcher recognises a header line. It returns false when the line is body text.
type Matcher struct {
	Name  string
	Match func(line string) (HeaderMatch, bool)
}

var (
	numberedRe = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	allCapsRe  = regexp.MustCompile(`^[A-Z][A-Z\s]{10,}$`)
	markupRe   = regexp.MustCompile(`^#{1,3}\s+`)
)

// NumberedMatcher recognises "12. Foo". The numeric prefix is kept in the title.
var NumberedMatcher = Matcher{
	Name: "numbered",
	Match: func(line string) (HeaderMatch, bool) {
		if !numberedRe.MatchString(line) {
			return HeaderMatch{}, false
		}
		return HeaderMatch{Matcher: "numbered", Title: line}, true
	},
}

// AllCapsMatcher recognises an upper-case run of at least eleven characters.
var AllCapsMatcher = Matcher{
	Name: "all-caps",
	Match: func(line string) (HeaderMatch, bool) {
		if !allCapsRe.MatchString(line) {
			return HeaderMatch{}, false
		}
		return HeaderMatch{Matcher: "all-caps", Title: line}, true
	},
}

// MarkupMatcher recognises one to three leading '#' markers followed by
// whitespace. The markers are stripped from the title.
var MarkupMatcher = Matcher{
	Name: "markup",
	Match: func(line string) (HeaderMatch, bool) {
		loc := markupRe.FindStringIndex(line)
		if loc == nil {
			return HeaderMatch{}, false
		}
		title := strings.TrimSpace(line[loc[1]:])
		if title == "" {
			return HeaderMatch{}, false
		}
		return HeaderMatch{Matcher: "markup", Title: title}, true
	},
}

// TextMatchers is the cascade used for plain extracted text.
var TextMatchers = []Matcher{NumberedMatcher, AllCapsMatcher, MarkupMatcher}

// MarkdownMatchers is the cascade used for Markdown sources.
var MarkdownMatchers = []Matcher{MarkupMatcher}

// MatchHeader runs line through matchers in order and returns the first hit.
func MatchHeader(line string, matchers []Matcher) (HeaderMatch, bool) {
	for _, m := range matchers {
		if hm, ok := m.Match(line); ok {
			return hm, true
		}
	}
	return HeaderMatch{}, false
}

// Segment splits raw text into sections using the plain-text header
// heuristics. Body lines seen before the first header open an implicit
// "Introduction" section. The result is never empty: when no section is
// produced a single "Content" section holds the whole text.
func Segment(text string) []types.Section {
	sections := segmentLines(nonEmptyLines(text), TextMatchers)
	if len(sections) == 0 {
		return fallback(text)
	}
	return sections
}

// SegmentMarkdown splits Markdown using only explicit heading markers. Blank
// lines inside a body are kept as single paragraph breaks. When no section
// is produced it defers to Segment.
func SegmentMarkdown(text string) []types.Section {
	sections := segmentLines(trimmedLines(text), MarkdownMatchers)
	if len(sections) == 0 {
		return Segment(text)
	}
	return sections
}

// nonEmptyLines returns the trimmed, non-blank lines of text.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// trimmedLines returns every line of text trimmed, blank lines included.
func trimmedLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// segmentLines is the flush state machine shared by both segmenters. Blank
// entries in lines become paragraph breaks within the current body.
func segmentLines(lines []string, matchers []Matcher) []types.Section {
	var (
		sections []types.Section
		current  *types.Section
		body     []string
	)

	flush := func() {
		if current == nil {
			return
		}
		for len(body) > 0 && body[len(body)-1] == "" {
			body = body[:len(body)-1]
		}
		if len(body) > 0 {
			current.Content = append(current.Content, types.ContentBlock{
				Text: strings.Join(body, "\n"),
			})
		}
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	open := func(title string) {
		current = &types.Section{
			ID:      sectionID(len(sections) + 1),
			Title:   title,
			Content: []types.ContentBlock{},
		}
	}

	for _, line := range lines {
		if line == "" {
			if len(body) > 0 && body[len(body)-1] != "" {
				body = append(body, "")
			}
			continue
		}
		if hm, ok := MatchHeader(line, matchers); ok {
			flush()
			open(hm.Title)
			continue
		}
		if current == nil {
			open(introductionTitle)
		}
		body = append(body, line)
	}
	flush()

	return sections
}

func fallback(text string) []types.Section {
	return []types.Section{{
		ID:      sectionID(1),
		Title:   fallbackTitle,
		Content: []types.ContentBlock{{Text: text}},
	}}
}
