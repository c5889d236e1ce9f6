// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract locates the bibliography block of extracted text and parses
// its entries into typed citation records. Only an explicit reference-list
// header triggers extraction; there is no whole-document fallback scan.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/scholarform/pkg/types"
)

// Bibliography boundary patterns.
var (
	// headerRe matches a reference-list header line, optionally behind a
	// Markdown heading marker and followed by a colon.
	headerRe = regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?(?:bibliography|references|works\s+cited|works\s+consulted)\s*:?$`)

	// headingRe matches any Markdown heading line; majorHeadingRe only
	// first- and second-level ones.
	headingRe      = regexp.MustCompile(`^#{1,6}\s+\S`)
	majorHeadingRe = regexp.MustCompile(`^#{1,2}\s+\S`)
)

// Boundary marks where the bibliography header sits in the text.
type Boundary struct {
	// Line is the zero-based index of the header line in text split on "\n".
	Line int

	// Offset is the byte offset at which the header line begins.
	Offset int

	// End is the byte offset at which the block ends: the start of the first
	// major heading after the header that does not name the bibliography, or
	// len(text) when the block runs to the end.
	End int
}

// Result is the outcome of scanning a text for its bibliography.
type Result struct {
	// Found reports whether a bibliography header was located.
	Found bool

	// Candidates is the number of entry candidates considered.
	Candidates int

	// Citations holds the accepted entries with IDs assigned from 1.
	Citations []types.Citation
}

// Rejected returns the number of candidates that failed the acceptance gate.
func (r Result) Rejected() int {
	return r.Candidates - len(r.Citations)
}

// Parser extracts citations. Its only dependency is the clock used when an
// entry carries no plausible year.
type Parser struct {
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock replaces the wall clock used for the year fallback.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// NewParser returns a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Extract returns the citations of text's bibliography, or an empty slice
// when text has no bibliography header.
func Extract(text string) []types.Citation {
	return defaultParser.Extract(text)
}

// ParseEntry parses a single bibliography entry with the default parser.
func ParseEntry(candidate string) (types.Citation, bool) {
	return defaultParser.ParseEntry(candidate)
}

// Locate finds the first bibliography header in text and the end of the
// block it opens.
func Locate(text string) (Boundary, bool) {
	var (
		b      Boundary
		found  bool
		offset int
	)
	for i, line := range strings.Split(text, "\n") {
		switch {
		case !found && isBibliographyHeader(line):
			b, found = Boundary{Line: i, Offset: offset}, true
		case found && endsBlock(line):
			b.End = offset
			return b, true
		}
		offset += len(line) + 1
	}
	if !found {
		return Boundary{}, false
	}
	b.End = len(text)
	return b, true
}

// Extract returns the citations of text's bibliography.
func (p *Parser) Extract(text string) []types.Citation {
	return p.Scan(text).Citations
}

// Scan locates the bibliography, splits it into candidate entries, and
// parses each one. Rejected candidates are dropped silently.
func (p *Parser) Scan(text string) Result {
	result := Result{Citations: []types.Citation{}}

	b, ok := Locate(text)
	if !ok {
		return result
	}
	result.Found = true

	lines := strings.Split(text, "\n")
	candidates := segmentEntries(lines[b.Line+1:])
	result.Candidates = len(candidates)

	for _, cand := range candidates {
		c, ok := p.ParseEntry(cand)
		if !ok {
			continue
		}
		c.ID = len(result.Citations) + 1
		result.Citations = append(result.Citations, c)
	}
	return result
}

func isBibliographyHeader(line string) bool {
	line = strings.Join(strings.Fields(line), " ")
	return line != "" && headerRe.MatchString(line)
}

// endsBlock reports whether line is a major heading that closes the
// bibliography block.
func endsBlock(line string) bool {
	line = strings.TrimSpace(line)
	return majorHeadingRe.MatchString(line) && !mentionsBibliography(line)
}

func mentionsBibliography(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "bibliograph") || strings.Contains(lower, "reference")
}

// segmentEntries walks the lines after the header and groups them into
// candidate entry texts. A blank line or a line carrying a new-entry
// signature closes the current candidate. A major Markdown heading that does
// not itself name the bibliography ends the block.
func segmentEntries(lines []string) []string {
	var (
		entries []string
		buf     []string
	)
	flush := func() {
		if len(buf) > 0 {
			entries = append(entries, strings.Join(buf, " "))
			buf = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			flush()
			continue
		case endsBlock(line):
			flush()
			return entries
		case headingRe.MatchString(line):
			// Sub-headings inside the block ("### Books") only separate entries.
			flush()
			continue
		}

		if len(buf) > 0 && startsEntry(line) {
			flush()
		}
		buf = append(buf, line)
	}
	flush()
	return entries
}
