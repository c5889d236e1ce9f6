package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarform/internal/cite"
	"github.com/pdiddy/scholarform/pkg/types"
)

// CSLItem is a bibliography entry in CSL-YAML form, readable by Pandoc and
// reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

var cslTypes = map[types.CitationType]string{
	types.CitationJournal: "article-journal",
	types.CitationBook:    "book",
	types.CitationWebsite: "webpage",
	types.CitationOther:   "document",
}

// CSL encodes the bibliography as a CSL-YAML list in surname order.
func CSL(doc types.Document) (Result, error) {
	sorted := cite.Sorted(doc.Bibliography)
	items := make([]CSLItem, len(sorted))
	keys := newKeySet()
	for i, c := range sorted {
		items[i] = toCSLItem(c, keys.next(c))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return Result{}, fmt.Errorf("encoding CSL-YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return Result{}, fmt.Errorf("encoding CSL-YAML: %w", err)
	}
	return Result{Data: buf.Bytes(), MIMEType: "application/x-yaml", Filename: Filename(doc, ".csl.yaml")}, nil
}

func toCSLItem(c types.Citation, key string) CSLItem {
	item := CSLItem{
		ID:             key,
		Type:           cslTypes[c.Type],
		Title:          c.Title,
		ContainerTitle: c.Source,
		Note:           c.Note,
	}
	if item.Type == "" {
		item.Type = cslTypes[types.CitationOther]
	}
	for _, a := range c.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if y, err := strconv.Atoi(c.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}
	switch {
	case strings.HasPrefix(c.Location, "http"), strings.HasPrefix(c.Location, "www."):
		item.URL = c.Location
	case c.Location != "":
		item.Page = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(c.Location, "pp."), "p."))
	}
	return item
}

// parseAuthorName splits an author string into CSL family and given parts.
// "Surname, Given" splits on the comma; "Given Surname" on the last space.
// Single tokens use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		return CSLName{Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{Given: name[:idx], Family: name[idx+1:]}
}
