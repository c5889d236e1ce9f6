package cite

import (
	"sort"
	"strings"

	"github.com/pdiddy/scholarform/pkg/types"
)

// Surname returns the sort key of an author string. "Smith, J." yields
// "Smith"; "Jane Doe" yields "Doe"; a single token is returned as is.
func Surname(author string) string {
	author = strings.TrimSpace(author)
	if i := strings.Index(author, ","); i > 0 {
		return strings.TrimSpace(author[:i])
	}
	fields := strings.Fields(author)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Sorted returns a copy of bib ordered by first-author surname using a
// case-sensitive byte comparison. Entries with equal surnames keep their
// extraction order. bib itself is not modified.
func Sorted(bib []types.Citation) []types.Citation {
	out := make([]types.Citation, len(bib))
	copy(out, bib)
	sort.SliceStable(out, func(i, j int) bool {
		return Surname(out[i].FirstAuthor()) < Surname(out[j].FirstAuthor())
	})
	return out
}
