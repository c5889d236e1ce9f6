// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package style maps academic style identifiers to formatting constants:
// fonts, spacing, heading alignment, running-head page numbers, and whether a
// title page is required. Every function here is total; unknown styles fall
// back to the Custom bundle.
package style

import (
	"strconv"
	"strings"

	"github.com/pdiddy/scholarform/pkg/types"
)

// Alignment is the horizontal alignment of section headings.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// PageNumberFunc formats a logical page number for the running head. The
// author argument is the document's free-form author metadata.
type PageNumberFunc func(page int, author string) string

// Rules is the bundle of formatting constants for one academic style.
type Rules struct {
	Style             types.AcademicStyle
	FontFamily        string
	FontSize          string
	LineHeight        string
	ParagraphIndent   string
	HeadingAlignment  Alignment
	PageNumber        PageNumberFunc
	TitlePageRequired bool
}

// IndentsParagraphs reports whether body paragraphs get a first-line indent.
func (r Rules) IndentsParagraphs() bool {
	return r.ParagraphIndent != "" && r.ParagraphIndent != "0"
}

// For returns the rules for style s. Unknown identifiers map to Custom.
func For(s types.AcademicStyle) Rules {
	switch s {
	case types.StyleAPA:
		return Rules{
			Style:             types.StyleAPA,
			FontFamily:        "'Times New Roman', serif",
			FontSize:          "12pt",
			LineHeight:        "2.0",
			ParagraphIndent:   "0.5in",
			HeadingAlignment:  AlignCenter,
			PageNumber:        plainPageNumber,
			TitlePageRequired: true,
		}
	case types.StyleMLA:
		return Rules{
			Style:             types.StyleMLA,
			FontFamily:        "'Times New Roman', serif",
			FontSize:          "12pt",
			LineHeight:        "2.0",
			ParagraphIndent:   "0.5in",
			HeadingAlignment:  AlignLeft,
			PageNumber:        surnamePageNumber,
			TitlePageRequired: false,
		}
	case types.StyleChicago:
		return Rules{
			Style:             types.StyleChicago,
			FontFamily:        "'Times New Roman', serif",
			FontSize:          "12pt",
			LineHeight:        "2.0",
			ParagraphIndent:   "0.5in",
			HeadingAlignment:  AlignCenter,
			PageNumber:        plainPageNumber,
			TitlePageRequired: true,
		}
	default:
		return Rules{
			Style:             types.StyleCustom,
			FontFamily:        "'Inter', sans-serif",
			FontSize:          "14pt",
			LineHeight:        "1.6",
			ParagraphIndent:   "0",
			HeadingAlignment:  AlignLeft,
			PageNumber:        plainPageNumber,
			TitlePageRequired: false,
		}
	}
}

// ParseStyle resolves a user-supplied style name case-insensitively.
// Unknown names resolve to Custom.
func ParseStyle(name string) types.AcademicStyle {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "apa":
		return types.StyleAPA
	case "mla":
		return types.StyleMLA
	case "chicago":
		return types.StyleChicago
	default:
		return types.StyleCustom
	}
}

// BibliographyHeading returns the heading printed above the reference list.
func BibliographyHeading(s types.AcademicStyle) string {
	switch s {
	case types.StyleAPA:
		return "References"
	case types.StyleMLA:
		return "Works Cited"
	default:
		return "Bibliography"
	}
}

// Surname returns the last whitespace-delimited token of an author string,
// or "" when the string is blank.
func Surname(author string) string {
	fields := strings.Fields(author)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func plainPageNumber(page int, _ string) string {
	return strconv.Itoa(page)
}

func surnamePageNumber(page int, author string) string {
	last := Surname(author)
	if last == "" {
		return strconv.Itoa(page)
	}
	return last + " " + strconv.Itoa(page)
}
