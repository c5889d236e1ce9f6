package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarform/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <document>",
	Short: "Export a document as DOCX, Markdown, CSL-YAML, or BibTeX",
	Long: `Export encodes the document for download. DOCX and Markdown carry the whole
paper with its style's page plan; csl and bibtex carry the bibliography only.
PDF is not produced here: render the print view and print it instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "docx", "export format: docx, md, csl, or bibtex")
	exportCmd.Flags().String("out", "", "output file (default: output.dir/<title>.<ext>)")
	addPresentationFlags(exportCmd)

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	if err := applyPresentationFlags(cmd, &doc); err != nil {
		return err
	}

	res, err := export.Export(doc, format)
	if err != nil {
		return err
	}

	dest, _ := cmd.Flags().GetString("out")
	if dest == "" {
		dest = filepath.Join(loadConfig().Output.Dir, res.Filename)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(dest, res.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	log.Debug("Exported document", zap.String("format", string(format)), zap.String("mime", res.MIMEType), zap.Int("bytes", len(res.Data)))
	fmt.Fprintf(os.Stdout, "wrote: %s\n", dest)
	return nil
}
