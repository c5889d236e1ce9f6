package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// abbreviations never end a sentence when followed by a period.
var abbreviations = map[string]bool{
	"al": true, "et al": true, "ed": true, "eds": true, "vol": true,
	"no": true, "pp": true, "p": true, "st": true, "jr": true, "sr": true, "dr": true,
}

// span is a half-open byte range.
type span struct {
	start, end int
}

// sentenceEnd returns the byte offset just past the first unprotected
// sentence terminator in text at or after from, or -1.
func sentenceEnd(text string, from int) int {
	for i := from; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '?' && c != '!' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		if c == '.' && protectedPeriod(text[:i]) {
			continue
		}
		return i + 1
	}
	return -1
}

// protectedPeriod reports whether a period following before is part of an
// initial or an abbreviation.
func protectedPeriod(before string) bool {
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return false
	}
	word := strings.TrimLeft(fields[len(fields)-1], `("“[`)
	if utf8.RuneCountInString(word) == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		return unicode.IsUpper(r)
	}
	// Hyphenated initials such as "J.-P".
	if i := strings.LastIndex(word, ".-"); i >= 0 && utf8.RuneCountInString(word[i+2:]) == 1 {
		return true
	}
	return abbreviations[strings.ToLower(word)]
}

// sentenceSpans splits text into sentences, each span starting at its
// first non-space byte and ending just past its terminator.
func sentenceSpans(text string) []span {
	var spans []span
	pos := 0
	for pos < len(text) {
		start := pos
		for start < len(text) && text[start] == ' ' {
			start++
		}
		if start >= len(text) {
			break
		}
		end := sentenceEnd(text, start)
		if end < 0 {
			end = len(text)
		}
		spans = append(spans, span{start: start, end: end})
		pos = end
	}
	return spans
}
