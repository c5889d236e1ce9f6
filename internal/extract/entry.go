package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/scholarform/pkg/types"
)

// minEntryLength is the shortest candidate, in characters, that can be a
// real reference.
const minEntryLength = 30

const (
	defaultTitle  = "Untitled"
	defaultSource = "Unknown Source"
)

// yearDigits matches a plausible publication year.
const yearDigits = `((?:1[5-9]|20)\d{2})`

// Entry signature patterns. A line matching any of them starts a new
// candidate entry.
var (
	markerRe         = regexp.MustCompile(`^(?:\[\d{1,3}\]|\(\d{1,3}\)|\d{1,3}[.)]|[-*•–])\s+`)
	surnameCommaRe   = regexp.MustCompile(`^\p{Lu}[\p{L}'’\-]+,\s+\p{Lu}`)
	surnameAmpRe     = regexp.MustCompile(`^\p{Lu}[\p{L}'’\-]+\s*&`)
	entrySignatures  = []*regexp.Regexp{markerRe, surnameCommaRe, surnameAmpRe}
	leadingSurnameRe = regexp.MustCompile(`^(?:(?:van|von|de|der|den|da|di|du|del|la|le)\s+)?\p{Lu}[\p{L}'’\-]+`)
)

func startsEntry(line string) bool {
	for _, re := range entrySignatures {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// yearMatcher is one arm of the year cascade.
type yearMatcher struct {
	name string
	re   *regexp.Regexp
}

// strictYears are the year forms that count as structural evidence of a
// reference. Order is priority.
var strictYears = []yearMatcher{
	{name: "parenthesized", re: regexp.MustCompile(`\(` + yearDigits + `[a-z]?(?:,[^)]*)?\)`)},
	{name: "bracketed", re: regexp.MustCompile(`\[` + yearDigits + `[a-z]?\]`)},
	{name: "comma-preceded", re: regexp.MustCompile(`,\s*` + yearDigits + `[a-z]?\b`)},
}

// bareYearRe is the last-resort year search once the strict forms fail.
var bareYearRe = regexp.MustCompile(`\b` + yearDigits + `\b`)

// yearMatch is a located year.
type yearMatch struct {
	matcher    string
	year       string
	start, end int
}

func matchStrictYear(text string) (yearMatch, bool) {
	for _, m := range strictYears {
		if loc := m.re.FindStringSubmatchIndex(text); loc != nil {
			return yearMatch{
				matcher: m.name,
				year:    text[loc[2]:loc[3]],
				start:   loc[0],
				end:     loc[1],
			}, true
		}
	}
	return yearMatch{}, false
}

// field is the result of one field extraction. Defaults are applied only
// through or, after every matcher has failed.
type field struct {
	value string
	ok    bool
}

func found(v string) field {
	v = strings.TrimSpace(v)
	return field{value: v, ok: v != ""}
}

func (f field) or(fallback string) string {
	if f.ok {
		return f.value
	}
	return fallback
}

// entry carries the intermediate state of parsing one candidate.
type entry struct {
	text string

	// authorEnd is the byte offset just past the author region.
	authorEnd int

	title field

	// titleEnd is the byte offset just past the extracted title.
	titleEnd int
}

// fieldMatcher extracts one field from an entry. Matchers for the same
// field are tried in declared order and the first hit wins.
type fieldMatcher struct {
	name  string
	match func(e *entry) (field, int)
}

var titleMatchers = []fieldMatcher{
	{name: "quoted", match: matchQuotedTitle},
	{name: "after-author", match: matchSentenceTitle},
}

var sourceMatchers = []fieldMatcher{
	{name: "italic", match: matchItalicSource},
	{name: "quoted", match: matchQuotedSource},
	{name: "capitalized-run", match: matchCapitalizedSource},
}

func runMatchers(e *entry, matchers []fieldMatcher) (field, int) {
	for _, m := range matchers {
		if f, end := m.match(e); f.ok {
			return f, end
		}
	}
	return field{}, 0
}

// ParseEntry parses one candidate entry. It returns false when the candidate
// is too short, lacks both a year and a leading name, has no extractable
// author, or has neither a title nor a source.
func (p *Parser) ParseEntry(candidate string) (types.Citation, bool) {
	text := strings.TrimSpace(markerRe.ReplaceAllString(strings.TrimSpace(candidate), ""))
	if utf8.RuneCountInString(text) < minEntryLength {
		return types.Citation{}, false
	}

	ym, strict := matchStrictYear(text)
	if !strict && !leadingSurnameRe.MatchString(text) {
		return types.Citation{}, false
	}

	authors, end := leadingAuthors(text)
	if len(authors) == 0 {
		return types.Citation{}, false
	}

	e := &entry{text: text, authorEnd: end}
	e.title, e.titleEnd = runMatchers(e, titleMatchers)
	source, _ := runMatchers(e, sourceMatchers)
	if !e.title.ok && !source.ok {
		return types.Citation{}, false
	}

	year := found(ym.year)
	if !year.ok {
		if m := bareYearRe.FindStringSubmatch(text); m != nil {
			year = found(m[1])
		}
	}

	return types.Citation{
		Authors:  authors,
		Year:     year.or(strconv.Itoa(p.now().Year())),
		Title:    e.title.or(defaultTitle),
		Source:   source.or(defaultSource),
		Location: matchLocation(text),
		Note:     matchNote(text),
		Type:     classify(text),
	}, true
}

// Title and source patterns.
var (
	quotedRe = regexp.MustCompile(`["“]([^"“”]{3,})["”]`)
	italicRe = regexp.MustCompile(`<i>(.+?)</i>|<em>(.+?)</em>|\*([^*]+)\*|(?:^|\s)_([^_]+)_`)

	// leadingYearRe strips a year token left at the start of the text after
	// the author region, e.g. "(2020). " or "2020. ".
	leadingYearRe = regexp.MustCompile(`^[\s.,;:]*[(\[]?` + yearDigits + `[a-z]?(?:,[^)\]]*)?[)\]]?[\s.,;:]*`)
)

func trimField(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".,;: ")
}

func matchQuotedTitle(e *entry) (field, int) {
	loc := quotedRe.FindStringSubmatchIndex(e.text[e.authorEnd:])
	if loc == nil {
		return field{}, 0
	}
	return found(trimField(e.text[e.authorEnd+loc[2] : e.authorEnd+loc[3]])), e.authorEnd + loc[1]
}

func matchSentenceTitle(e *entry) (field, int) {
	rest := e.text[e.authorEnd:]
	skip := 0
	if loc := leadingYearRe.FindStringIndex(rest); loc != nil {
		skip = loc[1]
	}
	rest = rest[skip:]
	for _, s := range sentenceSpans(rest) {
		title := trimField(rest[s.start:s.end])
		if utf8.RuneCountInString(title) < 2 || bareYearRe.MatchString(title) && len(title) <= 6 {
			continue
		}
		return found(title), e.authorEnd + skip + s.end
	}
	return field{}, 0
}

func matchItalicSource(e *entry) (field, int) {
	m := italicRe.FindStringSubmatch(e.text)
	if m == nil {
		return field{}, 0
	}
	for _, g := range m[1:] {
		if g != "" {
			return found(trimField(g)), 0
		}
	}
	return field{}, 0
}

func matchQuotedSource(e *entry) (field, int) {
	for _, m := range quotedRe.FindAllStringSubmatch(e.text, -1) {
		if q := trimField(m[1]); q != "" && q != e.title.value {
			return found(q), 0
		}
	}
	return field{}, 0
}

// locationCueRe marks text that reads as a location rather than a source.
var locationCueRe = regexp.MustCompile(`(?i)^(?:retrieved|available|from|pp?\.|pages|accessed|doi)\b`)

func matchCapitalizedSource(e *entry) (field, int) {
	if !e.title.ok {
		return field{}, 0
	}
	rest := strings.TrimLeft(e.text[e.titleEnd:], ` .,;:"”`)
	spans := sentenceSpans(rest)
	if len(spans) == 0 {
		return field{}, 0
	}
	run := rest[spans[0].start:spans[0].end]
	if i := strings.Index(run, ","); i >= 0 {
		run = run[:i]
	}
	run = trimField(run)
	r, _ := utf8.DecodeRuneInString(run)
	if run == "" || !unicode.IsUpper(r) || locationCueRe.MatchString(run) {
		return field{}, 0
	}
	return found(run), 0
}

// Location and note patterns.
var (
	pagesRe = regexp.MustCompile(`(?i)\b(pp?\.|pages)\s*(\d+(?:\s*[-–]\s*\d+)?)`)
	urlRe   = regexp.MustCompile(`(?i)\b(?:retrieved\s+from|available\s+(?:at|from)|from)\s+((?:https?://|www\.)\S+)`)
	noteRe  = regexp.MustCompile(`\(([^()]*[^\d()\s][^()]*)\)\s*\.?\s*$`)
)

func matchLocation(text string) string {
	if m := pagesRe.FindStringSubmatch(text); m != nil {
		label := strings.ToLower(m[1])
		if label == "pages" {
			label = "pp."
		}
		return label + " " + strings.Join(strings.Fields(m[2]), "")
	}
	if m := urlRe.FindStringSubmatch(text); m != nil {
		return strings.TrimRight(m[1], ".,;")
	}
	return ""
}

func matchNote(text string) string {
	m := noteRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return "(" + strings.TrimSpace(m[1]) + ")"
}

// classify infers the citation type from lexical cues, in priority order.
func classify(text string) types.CitationType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "journal") || strings.Contains(lower, "vol."):
		return types.CitationJournal
	case strings.Contains(lower, "http") || strings.Contains(lower, "www"):
		return types.CitationWebsite
	case strings.Contains(lower, "publisher") || strings.Contains(lower, "press"):
		return types.CitationBook
	default:
		return types.CitationOther
	}
}
