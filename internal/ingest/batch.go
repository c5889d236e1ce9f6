package ingest

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarform/internal/convert"
	"github.com/pdiddy/scholarform/pkg/types"
)

// Ingested pairs an input path with the document built from it.
type Ingested struct {
	Path     string
	Document types.Document
}

// BatchResult holds the outcome of a batch ingestion run.
type BatchResult struct {
	Ingested int
	Failed   int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Ingested + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// IngestFile reads path and ingests it. The content type is guessed from
// the extension.
func (p *Pipeline) IngestFile(path string) (types.Document, error) {
	if p.cfg.MaxBytes > 0 {
		if fi, err := os.Stat(path); err == nil && fi.Size() > p.cfg.MaxBytes {
			return types.Document{}, &convert.Error{
				Filename: filepath.Base(path),
				Kind:     convert.ErrUnreadable,
				Err:      fmt.Errorf("%d bytes exceeds the %d byte limit", fi.Size(), p.cfg.MaxBytes),
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, &convert.Error{Filename: filepath.Base(path), Kind: convert.ErrUnreadable, Err: err}
	}
	return p.Ingest(data, filepath.Base(path), mime.TypeByExtension(filepath.Ext(path)))
}

// IngestFiles ingests paths in natural order ("ch2" before "ch10"), writing
// one status line per file and a summary to w. Files are processed one at
// a time and a failure does not stop the batch. The returned error combines
// every per-file failure.
func (p *Pipeline) IngestFiles(paths []string, w io.Writer) ([]Ingested, BatchResult, error) {
	sorted := append([]string(nil), paths...)
	sort.Sort(natural.StringSlice(sorted))

	var (
		docs   []Ingested
		result BatchResult
		errs   error
	)
	for _, path := range sorted {
		doc, err := p.IngestFile(path)
		if err != nil {
			result.Failed++
			errs = multierr.Append(errs, err)
			p.logger.Debug("Ingest failed", zap.String("path", path), zap.Error(err))
			fmt.Fprintf(w, "failed:   %s (%v)\n", path, err)
			continue
		}
		result.Ingested++
		docs = append(docs, Ingested{Path: path, Document: doc})
		fmt.Fprintf(w, "ingested: %s (%d sections, %d citations)\n", path, len(doc.Sections), len(doc.Bibliography))
	}

	fmt.Fprintf(w, "\nBatch summary: %d ingested, %d failed (total: %d)\n",
		result.Ingested, result.Failed, result.Total())
	return docs, result, errs
}
