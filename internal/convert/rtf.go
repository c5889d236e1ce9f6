package convert

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var (
	rtfMagic = []byte(`{\rtf`)

	// rtfDestRe matches groups whose content is never body text.
	rtfDestRe = regexp.MustCompile(`\{\\(?:\*\\[a-z]+|fonttbl|colortbl|stylesheet|info|pict|header|footer)[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

	rtfBreakRe   = regexp.MustCompile(`(\\[a-zA-Z]+-?\d*)\r?\n`)
	rtfParRe     = regexp.MustCompile(`\\(?:par|line)\b ?`)
	rtfTabRe     = regexp.MustCompile(`\\tab\b ?`)
	rtfHexRe     = regexp.MustCompile(`\\'([0-9a-fA-F]{2})`)
	rtfUnicodeRe = regexp.MustCompile(`\\u(-?\d+)\??`)
	rtfControlRe = regexp.MustCompile(`\\[a-zA-Z]+-?\d* ?`)

	rtfTitleRe  = regexp.MustCompile(`\{\\title\s+([^{}]*)\}`)
	rtfAuthorRe = regexp.MustCompile(`\{\\author\s+([^{}]*)\}`)
)

// ExtractRTF strips control words and groups from RTF source. It decodes
// \'hh escapes as Windows-1252 and \uN escapes as Unicode. Title and author
// come from the \info group.
func ExtractRTF(data []byte) (Extraction, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), rtfMagic) {
		return Extraction{}, fmt.Errorf("%w: missing RTF header", ErrUninterpretable)
	}
	src := string(data)

	ex := Extraction{Format: FormatRTF}
	if m := rtfTitleRe.FindStringSubmatch(src); m != nil {
		ex.Title = m[1]
	}
	if m := rtfAuthorRe.FindStringSubmatch(src); m != nil {
		ex.Author = m[1]
	}

	// Line breaks in RTF source are insignificant except as the delimiter
	// of a control word.
	s := rtfBreakRe.ReplaceAllString(src, "$1 ")
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	s = rtfEscapes.Replace(s)
	s = rtfDestRe.ReplaceAllString(s, "")
	s = rtfParRe.ReplaceAllString(s, "\n")
	s = rtfTabRe.ReplaceAllString(s, "\t")
	s = rtfHexRe.ReplaceAllStringFunc(s, func(m string) string {
		n, _ := strconv.ParseUint(m[2:], 16, 8)
		return string(charmap.Windows1252.DecodeByte(byte(n)))
	})
	s = rtfUnicodeRe.ReplaceAllStringFunc(s, func(m string) string {
		n, _ := strconv.Atoi(rtfUnicodeRe.FindStringSubmatch(m)[1])
		if n < 0 {
			n += 65536
		}
		return string(rune(n))
	})
	s = rtfControlRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	s = rtfUnescapes.Replace(s)

	ex.Text = strings.TrimSpace(s)
	return ex, nil
}

// Escaped literals are parked on control bytes while groups are stripped.
var (
	rtfEscapes   = strings.NewReplacer(`\\`, "\x01", `\{`, "\x02", `\}`, "\x03")
	rtfUnescapes = strings.NewReplacer("\x01", `\`, "\x02", "{", "\x03", "}")
)
