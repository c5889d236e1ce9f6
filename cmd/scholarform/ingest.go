package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarform/internal/docio"
	"github.com/pdiddy/scholarform/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest drafts into document snapshots",
	Long: `Ingest extracts the text of each file, segments it into sections, parses
its bibliography, and writes a document snapshot to the output directory.
Files are processed in natural order; a failing file does not stop the batch.

Supported inputs are PDF, DOCX, RTF, Markdown, and plain text. When
convert.container_image is configured, other formats are converted by that
image.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("format", "yaml", "snapshot encoding: yaml or json")
	ingestCmd.Flags().String("out", "", "output directory (default: output.dir)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	format, _ := cmd.Flags().GetString("format")
	enc, err := docio.ParseEncoding(format)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.Output.Dir
	}

	p := newPipeline(cmd.Context(), cfg)
	docs, result, errs := p.IngestFiles(args, os.Stdout)

	for _, d := range docs {
		stem := strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path))
		dest := filepath.Join(outDir, stem+enc.Ext())
		if err := docio.Save(dest, d.Document); err != nil {
			return fmt.Errorf("saving %s: %w", dest, err)
		}
		fmt.Fprintf(os.Stdout, "wrote:    %s\n", dest)
	}

	return ingestFailure(result, errs)
}

// ingestFailure summarizes a batch with failures, keeping the per-file
// errors reachable through errors.Is.
func ingestFailure(result ingest.BatchResult, errs error) error {
	if !result.HasFailures() {
		return nil
	}
	return fmt.Errorf("%d file(s) failed ingestion: %w", result.Failed, errs)
}
