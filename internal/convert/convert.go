// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns uploaded bytes into plain UTF-8 text plus a weak
// metadata guess. Each supported format has an Extractor; a Registry picks
// one by filename, declared content type, and content sniffing.
package convert

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Format identifies an input document format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatRTF      Format = "rtf"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"

	// FormatUnknown marks input no extractor claimed.
	FormatUnknown Format = ""
)

// Extraction is the text of a document and what could be guessed about it.
type Extraction struct {
	Text   string
	Title  string
	Author string

	// Format is the format the text was extracted from. Markdown text keeps
	// its heading markers so ingestion can use the Markdown segmenter.
	Format Format
}

// Extractor decodes one document format.
type Extractor interface {
	Extract(data []byte) (Extraction, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(data []byte) (Extraction, error)

// Extract calls f(data).
func (f ExtractorFunc) Extract(data []byte) (Extraction, error) { return f(data) }

// Failure kinds. Callers match them with errors.Is.
var (
	ErrUnreadable      = errors.New("could not read file")
	ErrUninterpretable = errors.New("could not interpret format")
)

// Error reports an extraction failure for a named file.
type Error struct {
	Filename string

	// Kind is ErrUnreadable or ErrUninterpretable.
	Kind error

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Filename, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Filename, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Registry maps formats to extractors.
type Registry struct {
	extractors map[Format]Extractor
	fallback   Extractor
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithExtractor registers or replaces the extractor for f.
func WithExtractor(f Format, x Extractor) RegistryOption {
	return func(r *Registry) { r.extractors[f] = x }
}

// WithFallback sets the extractor used for input no format claims.
func WithFallback(x Extractor) RegistryOption {
	return func(r *Registry) { r.fallback = x }
}

// NewRegistry returns a registry with the built-in extractors and opts
// applied.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{extractors: map[Format]Extractor{
		FormatPDF:      ExtractorFunc(ExtractPDF),
		FormatDOCX:     ExtractorFunc(ExtractDOCX),
		FormatRTF:      ExtractorFunc(ExtractRTF),
		FormatMarkdown: ExtractorFunc(ExtractMarkdown),
		FormatText:     ExtractorFunc(ExtractText),
	}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Extract detects the format of data and runs the matching extractor. The
// returned text is NFC-normalized with LF line endings. Every failure is an
// *Error.
func (r *Registry) Extract(filename, contentType string, data []byte) (Extraction, error) {
	if len(data) == 0 {
		return Extraction{}, &Error{Filename: filename, Kind: ErrUnreadable, Err: errors.New("empty input")}
	}

	f := Detect(filename, contentType, data)
	x, ok := r.extractors[f]
	if !ok {
		x = r.fallback
	}
	if x == nil {
		return Extraction{}, &Error{Filename: filename, Kind: ErrUninterpretable, Err: fmt.Errorf("unsupported format %q", contentType)}
	}

	ex, err := x.Extract(data)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Filename = filename
			return Extraction{}, ce
		}
		kind := ErrUninterpretable
		if errors.Is(err, ErrUnreadable) {
			kind = ErrUnreadable
		}
		return Extraction{}, &Error{Filename: filename, Kind: kind, Err: err}
	}

	if ex.Format == FormatUnknown {
		ex.Format = f
	}
	ex.Text = normalize(ex.Text)
	ex.Title = strings.TrimSpace(normalize(ex.Title))
	ex.Author = strings.TrimSpace(normalize(ex.Author))
	return ex, nil
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}
