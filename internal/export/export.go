// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export encodes a document for download. Page-aware encoders take
// their page plan from layout.Compute; every encoder writes the
// bibliography in surname order.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/pdiddy/scholarform/pkg/types"
)

// Format names an export target.
type Format string

const (
	FormatDOCX     Format = "docx"
	FormatMarkdown Format = "md"
	FormatCSL      Format = "csl"
	FormatBibTeX   Format = "bibtex"
	FormatPDF      Format = "pdf"
)

// Formats lists every accepted format name.
var Formats = []Format{FormatDOCX, FormatMarkdown, FormatCSL, FormatBibTeX, FormatPDF}

// ErrUnsupportedFormat is returned for targets scholarform cannot encode.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Result is an encoded document ready to be written or served.
type Result struct {
	Data     []byte
	MIMEType string
	Filename string
}

// ParseFormat resolves a format name case-insensitively. "markdown" is
// accepted for md.
func ParseFormat(name string) (Format, error) {
	switch n := Format(strings.ToLower(strings.TrimSpace(name))); n {
	case "markdown":
		return FormatMarkdown, nil
	case FormatDOCX, FormatMarkdown, FormatCSL, FormatBibTeX, FormatPDF:
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Export encodes doc in format f. PDF is not encoded here: print the
// rendered print view instead.
func Export(doc types.Document, f Format) (Result, error) {
	switch f {
	case FormatDOCX:
		return DOCX(doc)
	case FormatMarkdown:
		return Markdown(doc)
	case FormatCSL:
		return CSL(doc)
	case FormatBibTeX:
		return BibTeX(doc)
	case FormatPDF:
		return Result{}, fmt.Errorf("%w: pdf (print the rendered print view instead)", ErrUnsupportedFormat)
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Filename returns the download name for doc with extension ext.
func Filename(doc types.Document, ext string) string {
	name := slug.Make(doc.Metadata.Title)
	if name == "" {
		name = "document"
	}
	return name + ext
}
