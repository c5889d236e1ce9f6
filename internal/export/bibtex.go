package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gosimple/slug"

	"github.com/pdiddy/scholarform/internal/cite"
	"github.com/pdiddy/scholarform/pkg/types"
)

var bibtexTypes = map[types.CitationType]string{
	types.CitationJournal: "article",
	types.CitationBook:    "book",
	types.CitationWebsite: "online",
	types.CitationOther:   "misc",
}

// BibTeX encodes the bibliography as BibTeX entries in surname order.
func BibTeX(doc types.Document) (Result, error) {
	var b strings.Builder
	keys := newKeySet()
	for _, c := range cite.Sorted(doc.Bibliography) {
		kind := bibtexTypes[c.Type]
		if kind == "" {
			kind = "misc"
		}
		fmt.Fprintf(&b, "@%s{%s,\n", kind, keys.next(c))
		fmt.Fprintf(&b, "  title = {%s},\n", bibtexEscape(c.Title))
		if len(c.Authors) > 0 {
			fmt.Fprintf(&b, "  author = {%s},\n", bibtexEscape(strings.Join(c.Authors, " and ")))
		}
		if c.Year != "" {
			fmt.Fprintf(&b, "  year = {%s},\n", c.Year)
		}
		if c.Source != "" {
			field := "journal"
			if c.Type != types.CitationJournal {
				field = "publisher"
			}
			fmt.Fprintf(&b, "  %s = {%s},\n", field, bibtexEscape(c.Source))
		}
		switch {
		case strings.HasPrefix(c.Location, "http"), strings.HasPrefix(c.Location, "www."):
			fmt.Fprintf(&b, "  url = {%s},\n", c.Location)
		case c.Location != "":
			fmt.Fprintf(&b, "  pages = {%s},\n", strings.TrimSpace(strings.TrimPrefix(c.Location, "pp.")))
		}
		if c.Note != "" {
			fmt.Fprintf(&b, "  note = {%s},\n", bibtexEscape(c.Note))
		}
		b.WriteString("}\n\n")
	}
	return Result{Data: []byte(b.String()), MIMEType: "application/x-bibtex", Filename: Filename(doc, ".bib")}, nil
}

var bibtexSpecials = strings.NewReplacer(`&`, `\&`, `%`, `\%`, `$`, `\$`, `#`, `\#`, `_`, `\_`)

func bibtexEscape(s string) string {
	return bibtexSpecials.Replace(s)
}

// CitationKeys returns the key of each citation of bib in surname order,
// as written by BibTeX and CSL.
func CitationKeys(bib []types.Citation) []string {
	sorted := cite.Sorted(bib)
	keys := newKeySet()
	out := make([]string, len(sorted))
	for i, c := range sorted {
		out[i] = keys.next(c)
	}
	return out
}

// keySet issues SurnameYear citation keys, suffixing a, b, ... on
// collisions.
type keySet struct {
	seen map[string]int
}

func newKeySet() *keySet {
	return &keySet{seen: make(map[string]int)}
}

func (k *keySet) next(c types.Citation) string {
	base := keyStem(cite.Surname(c.FirstAuthor())) + c.Year
	if base == "" {
		base = fmt.Sprintf("ref%d", c.ID)
	}
	n := k.seen[base]
	k.seen[base] = n + 1
	switch {
	case n == 0:
		return base
	case n <= 26:
		return base + string(rune('a'+n-1))
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// keyStem reduces a surname to ASCII letters and digits, capitalized.
func keyStem(surname string) string {
	s := strings.ReplaceAll(slug.Make(surname), "-", "")
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
