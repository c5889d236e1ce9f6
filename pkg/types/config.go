package types

import "time"

// IngestConfig holds the defaults applied to a freshly ingested document.
type IngestConfig struct {
	// Style is the academic style assigned to new documents (default APA).
	Style AcademicStyle `json:"style" yaml:"style"`

	// PaperSize is the print sheet assigned to new documents. When empty the
	// style's recommended size is used.
	PaperSize PaperSize `json:"paper_size" yaml:"paper_size"`

	// ViewMode is the preferred render target (default print).
	ViewMode ViewMode `json:"view_mode" yaml:"view_mode"`

	// ShowIndex enables the table of contents page.
	ShowIndex bool `json:"show_index" yaml:"show_index"`

	// MaxBytes rejects uploads larger than this many bytes. Zero disables the check.
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"`
}

// ConvertConfig configures text extraction for formats without a built-in
// extractor.
type ConvertConfig struct {
	// ContainerImage, when set, names an image that reads a document on
	// stdin and writes Markdown on stdout. Unrecognized formats are piped
	// through it instead of failing.
	ContainerImage string `json:"container_image,omitempty" yaml:"container_image,omitempty"`

	// Timeout bounds a single container run. Zero means no limit.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// OutputConfig holds settings for files written by the CLI.
type OutputConfig struct {
	// Dir is the directory that receives snapshots, renders, and exports.
	Dir string `json:"dir" yaml:"dir"`
}

// LoggingConfig selects the console log level and an optional log file.
type LoggingConfig struct {
	// Level is one of "none", "normal", or "debug".
	Level string `json:"level" yaml:"level"`

	// Destination is an optional file that receives debug-level logs.
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// PipelineConfig groups all configuration for the CLI.
type PipelineConfig struct {
	Ingest  IngestConfig  `json:"ingest" yaml:"ingest"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}
