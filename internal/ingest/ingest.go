// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest assembles a structured document from uploaded bytes. It
// runs a text extractor, segments the body into sections, parses the
// bibliography from the same text, and fills the metadata defaults.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarform/internal/convert"
	"github.com/pdiddy/scholarform/internal/extract"
	"github.com/pdiddy/scholarform/internal/segment"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// DateLayout formats the default document date.
const DateLayout = "January 2, 2006"

const untitledDocument = "Untitled Document"

// documentNamespace seeds document IDs so equal bytes get equal IDs.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("scholarform/document"))

// Pipeline turns uploads into documents. A Pipeline holds no per-upload
// state and may serve concurrent calls.
type Pipeline struct {
	registry *convert.Registry
	parser   *extract.Parser
	cfg      types.IngestConfig
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegistry replaces the built-in extractor registry.
func WithRegistry(r *convert.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithConfig sets the defaults applied to new documents.
func WithConfig(cfg types.IngestConfig) Option {
	return func(p *Pipeline) { p.cfg = cfg }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithClock replaces the wall clock used for the default date and the
// citation year fallback.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New returns a Pipeline with opts applied.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = convert.NewRegistry()
	}
	p.parser = extract.NewParser(extract.WithClock(p.now))
	return p
}

// Ingest builds a document from data. filename and contentType guide
// format detection and the default title. The only error is an extraction
// failure, reported as a *convert.Error.
func (p *Pipeline) Ingest(data []byte, filename, contentType string) (types.Document, error) {
	log := p.logger.With(zap.String("file", filename))

	if p.cfg.MaxBytes > 0 && int64(len(data)) > p.cfg.MaxBytes {
		return types.Document{}, &convert.Error{
			Filename: filename,
			Kind:     convert.ErrUnreadable,
			Err:      fmt.Errorf("%d bytes exceeds the %d byte limit", len(data), p.cfg.MaxBytes),
		}
	}

	ex, err := p.registry.Extract(filename, contentType, data)
	if err != nil {
		return types.Document{}, err
	}
	log.Debug("Extracted text", zap.String("format", string(ex.Format)), zap.Int("chars", len(ex.Text)))

	doc := types.Document{
		ID:       uuid.NewSHA1(documentNamespace, data).String(),
		Metadata: p.metadata(ex, filename),
		Sections: p.sections(ex),
	}
	p.applyDefaults(&doc)

	res := p.parser.Scan(ex.Text)
	doc.Bibliography = res.Citations
	if res.Found {
		log.Debug("Parsed bibliography",
			zap.Int("candidates", res.Candidates),
			zap.Int("accepted", len(res.Citations)),
			zap.Int("rejected", res.Rejected()))
	}

	log.Info("Ingested document",
		zap.String("title", doc.Metadata.Title),
		zap.Int("sections", len(doc.Sections)),
		zap.Int("citations", len(doc.Bibliography)))
	return doc, nil
}

// sections segments the text around the bibliography block. The reference
// list is parsed separately and is not repeated as body content; anything
// after it, such as an appendix, is kept.
func (p *Pipeline) sections(ex convert.Extraction) []types.Section {
	b, ok := extract.Locate(ex.Text)
	if !ok {
		return segment.NormalizeIDs(p.segmentText(ex.Format, ex.Text))
	}

	sections := p.segmentText(ex.Format, ex.Text[:b.Offset])
	for _, s := range p.segmentText(ex.Format, ex.Text[b.End:]) {
		// Renumbered after the sections above the block.
		s.ID = ""
		sections = append(sections, s)
	}
	return segment.NormalizeIDs(sections)
}

func (p *Pipeline) segmentText(format convert.Format, text string) []types.Section {
	if strings.TrimSpace(text) == "" {
		return []types.Section{}
	}
	switch format {
	case convert.FormatMarkdown, convert.FormatDOCX:
		return segment.SegmentMarkdown(text)
	default:
		return segment.Segment(text)
	}
}

func (p *Pipeline) metadata(ex convert.Extraction, filename string) types.DocumentMetadata {
	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if title == "" || title == "." {
		title = ex.Title
	}
	if title == "" {
		title = untitledDocument
	}
	return types.DocumentMetadata{
		Title:  title,
		Author: ex.Author,
		Date:   p.now().Format(DateLayout),
	}
}

func (p *Pipeline) applyDefaults(doc *types.Document) {
	doc.Style = types.StyleAPA
	if p.cfg.Style != "" {
		doc.Style = style.ParseStyle(string(p.cfg.Style))
	}

	doc.PaperSize = style.RecommendedPaperSize(doc.Style)
	if size, ok := style.ParsePaperSize(string(p.cfg.PaperSize)); ok {
		doc.PaperSize = size
	}

	doc.ViewMode = types.ViewPrint
	if p.cfg.ViewMode == types.ViewWeb {
		doc.ViewMode = types.ViewWeb
	}
	doc.ShowIndex = p.cfg.ShowIndex
}
