package convert

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

var extFormats = map[string]Format{
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".rtf":      FormatRTF,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".txt":      FormatText,
	".text":     FormatText,
}

var mimeFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"application/rtf": FormatRTF,
	"text/rtf":        FormatRTF,
	"text/markdown":   FormatMarkdown,
	"text/x-markdown": FormatMarkdown,
	"text/plain":      FormatText,
}

// Detect returns the format of a document, trying the filename extension,
// then the declared content type, then the leading bytes. Undecodable
// binary content is FormatUnknown; anything else that looks like text is
// FormatText.
func Detect(filename, contentType string, data []byte) Format {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(filename))]; ok {
		return f
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if f, ok := mimeFormats[mt]; ok {
			return f
		}
	}
	return sniff(data)
}

func sniff(data []byte) Format {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		switch kind.Extension {
		case "pdf":
			return FormatPDF
		case "docx":
			return FormatDOCX
		case "rtf":
			return FormatRTF
		}
		return FormatUnknown
	}
	if looksLikeText(data) {
		return FormatText
	}
	return FormatUnknown
}
