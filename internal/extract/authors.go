package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxLooseTokens is the most comma-separated tokens an author list may leave
// unpaired before the whole run is kept as a single author string.
const maxLooseTokens = 3

// maxNameWords bounds the words in a single author name.
const maxNameWords = 6

var (
	// authorYearRe finds the parenthesized or bracketed year that usually
	// closes the author region.
	authorYearRe = regexp.MustCompile(`[(\[]` + yearDigits)

	trailingYearRe = regexp.MustCompile(`\s*[(\[]?` + yearDigits + `[a-z]?[)\]]?\.?$`)
	etAlRe         = regexp.MustCompile(`(?i),?\s*\bet\s+al\b\.?`)
	andRe          = regexp.MustCompile(`,?\s+(?:and|&)\s+`)

	initialsRe          = regexp.MustCompile(`^(?:\p{Lu}\.\s*-?\s*)+$`)
	givenWithInitialsRe = regexp.MustCompile(`^\p{Lu}[\p{L}'’\-]+(?:\s+\p{Lu}\.)+$`)
	givenWordRe         = regexp.MustCompile(`^\p{Lu}[\p{L}'’\-]+$`)

	// initialBeforeRunRe finds an initial's period followed by a run of
	// words, the shape of an unquoted title that directly follows "J.".
	initialBeforeRunRe = regexp.MustCompile(`(?:^|[\s,])\p{Lu}\.(\s+)\p{Lu}\p{L}*\s+\p{L}`)
)

// particles may appear lowercase inside a name.
var particles = map[string]bool{
	"van": true, "von": true, "de": true, "der": true, "den": true, "da": true,
	"di": true, "du": true, "del": true, "la": true, "le": true, "el": true,
	"y": true, "of": true, "the": true, "for": true,
}

// authorRegion returns the leading part of text that holds the author list
// and the byte offset where it ends. The region ends at the earliest of a
// parenthesized year, an opening quote, or the first sentence end.
func authorRegion(text string) (string, int) {
	end := len(text)
	if loc := authorYearRe.FindStringIndex(text); loc != nil {
		end = loc[0]
	}
	if i := strings.IndexAny(text, `"“`); i >= 0 && i < end {
		end = i
	}
	if i := sentenceEnd(text, 0); i >= 0 && i < end {
		end = i
	}
	return text[:end], end
}

// leadingAuthors extracts the author list from the start of text and
// returns the offset where the author region ends. When the full region does
// not read as names and an initial is directly followed by a run of words,
// the region is retried ending at that initial.
func leadingAuthors(text string) ([]string, int) {
	region, end := authorRegion(text)
	if authors := splitAuthors(region); authors != nil {
		return authors, end
	}
	if loc := initialBeforeRunRe.FindStringSubmatchIndex(region); loc != nil {
		if authors := splitAuthors(region[:loc[2]]); authors != nil {
			return authors, loc[2]
		}
	}
	return nil, end
}

// cleanRegion strips trailing years, punctuation, and "et al." from an
// author region.
func cleanRegion(region string) string {
	s := etAlRe.ReplaceAllString(region, "")
	for {
		prev := s
		s = strings.TrimRight(strings.TrimSpace(s), ",;:")
		s = trailingYearRe.ReplaceAllString(s, "")
		if strings.HasSuffix(s, ".") && !protectedPeriod(s[:len(s)-1]) {
			s = s[:len(s)-1]
		}
		if s == prev {
			return s
		}
	}
}

// splitAuthors turns an author region into individual names. It returns nil
// when any resulting name fails validation.
func splitAuthors(region string) []string {
	s := cleanRegion(region)
	if s == "" {
		return nil
	}
	s = andRe.ReplaceAllString(s, " & ")

	var parts [][]string
	for _, part := range strings.Split(s, "&") {
		var tokens []string
		for _, t := range strings.Split(part, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tokens = append(tokens, t)
			}
		}
		parts = append(parts, tokens)
	}

	// A closing "Surname, Given" part shows the list inverts full names.
	fullGiven := false
	if last := parts[len(parts)-1]; len(last) == 2 && givenWordRe.MatchString(last[1]) {
		fullGiven = true
	}

	var authors []string
	for _, tokens := range parts {
		authors = append(authors, pairNames(tokens, fullGiven)...)
	}
	if len(authors) == 0 {
		return nil
	}
	for _, a := range authors {
		if !validName(a) {
			return nil
		}
	}
	return authors
}

// pairNames joins "Surname, Given" token pairs. With fullGiven set, an even
// run whose every second token is a single given name is paired throughout.
// When too many tokens stay unpaired the run is returned as one name.
func pairNames(tokens []string, fullGiven bool) []string {
	var (
		names []string
		loose int
	)
	inverted := fullGiven && invertedFullNames(tokens)
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && (inverted || pairs(tokens[i+1], len(tokens))) {
			names = append(names, tokens[i]+", "+tokens[i+1])
			i++
			continue
		}
		names = append(names, tokens[i])
		loose++
	}
	if loose > maxLooseTokens {
		return []string{strings.Join(tokens, ", ")}
	}
	return names
}

func invertedFullNames(tokens []string) bool {
	if len(tokens) < 2 || len(tokens)%2 != 0 {
		return false
	}
	for i := 1; i < len(tokens); i += 2 {
		if !givenWordRe.MatchString(tokens[i]) {
			return false
		}
	}
	return true
}

func pairs(next string, count int) bool {
	return initialsRe.MatchString(next) ||
		givenWithInitialsRe.MatchString(next) ||
		count == 2
}

// validName accepts a short run of capitalized words, allowing name
// particles in lowercase.
func validName(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}
	words := strings.Fields(strings.ReplaceAll(name, ",", " "))
	if len(words) == 0 || len(words) > maxNameWords {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) && !particles[strings.ToLower(w)] {
			return false
		}
	}
	return true
}
