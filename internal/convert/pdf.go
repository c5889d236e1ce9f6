package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF returns the plain text of every page and the Title and Author
// entries of the document Info dictionary.
func ExtractPDF(data []byte) (ex Extraction, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			ex, err = Extraction{}, fmt.Errorf("%w: malformed PDF: %v", ErrUninterpretable, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: opening PDF: %v", ErrUninterpretable, err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	info := r.Trailer().Key("Info")
	return Extraction{
		Text:   b.String(),
		Title:  info.Key("Title").Text(),
		Author: info.Key("Author").Text(),
		Format: FormatPDF,
	}, nil
}
