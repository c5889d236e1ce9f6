package segment

import (
	"regexp"
	"strings"
)

var blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)

// Paragraphs splits a block body on blank lines. Lines inside a paragraph
// are joined with single spaces and empty paragraphs are dropped.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range blankLineRe.Split(strings.ReplaceAll(text, "\r\n", "\n"), -1) {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return out
}
