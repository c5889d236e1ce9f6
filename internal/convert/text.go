package convert

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// sniffLen is how much of the input looksLikeText inspects.
const sniffLen = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExtractText returns UTF-8 text input unchanged apart from a leading BOM.
func ExtractText(data []byte) (Extraction, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return Extraction{}, fmt.Errorf("%w: text is not valid UTF-8", ErrUninterpretable)
	}
	return Extraction{Text: string(data), Format: FormatText}, nil
}

// ExtractMarkdown returns Markdown source as text. Heading markers are kept
// for the Markdown segmenter. A first-level heading doubles as the title
// guess.
func ExtractMarkdown(data []byte) (Extraction, error) {
	ex, err := ExtractText(data)
	if err != nil {
		return Extraction{}, err
	}
	ex.Format = FormatMarkdown
	ex.Title = firstHeading(ex.Text)
	return ex, nil
}

func firstHeading(text string) string {
	for _, line := range bytes.Split([]byte(text), []byte("\n")) {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("# ")) {
			return string(bytes.TrimSpace(line[2:]))
		}
	}
	return ""
}

func looksLikeText(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return !bytes.ContainsRune(data, 0) && utf8.Valid(trimPartialRune(data))
}

// trimPartialRune drops a multi-byte rune cut at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			break
		}
	}
	return b
}
