package style

import (
	"strings"

	"github.com/pdiddy/scholarform/pkg/types"
)

// Paper describes the physical dimensions of a print sheet.
type Paper struct {
	Size   types.PaperSize
	Name   string
	Width  string
	Height string
	Label  string
}

var papers = map[types.PaperSize]Paper{
	types.PaperA4: {
		Size:   types.PaperA4,
		Name:   "A4",
		Width:  "210mm",
		Height: "297mm",
		Label:  "A4 (210 x 297mm)",
	},
	types.PaperLetter: {
		Size:   types.PaperLetter,
		Name:   "Letter",
		Width:  "215.9mm",
		Height: "279.4mm",
		Label:  "US Letter (8.5 x 11in)",
	},
	types.PaperLegal: {
		Size:   types.PaperLegal,
		Name:   "Legal",
		Width:  "215.9mm",
		Height: "355.6mm",
		Label:  "US Legal (8.5 x 14in)",
	},
}

// PaperFor returns the dimensions of size. Unknown sizes fall back to Letter.
func PaperFor(size types.PaperSize) Paper {
	if p, ok := papers[size]; ok {
		return p
	}
	return papers[types.PaperLetter]
}

// ParsePaperSize resolves a paper size name case-insensitively. The boolean
// is false when the name is not recognised.
func ParsePaperSize(name string) (types.PaperSize, bool) {
	size := types.PaperSize(strings.ToLower(strings.TrimSpace(name)))
	_, ok := papers[size]
	return size, ok
}

// RecommendedPaperSize returns the sheet conventionally used with a style.
func RecommendedPaperSize(s types.AcademicStyle) types.PaperSize {
	switch s {
	case types.StyleAPA, types.StyleMLA:
		return types.PaperLetter
	default:
		return types.PaperA4
	}
}
