package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarform/internal/render"
	"github.com/pdiddy/scholarform/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <document>",
	Short: "Render a document as print or web XHTML",
	Long: `Render writes the document as XHTML. The print view is paginated to the
paper size with a running head on every page; the web view is one continuous
article. The document is a snapshot or any file ingest accepts.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("mode", "", "view mode: print or web (default: the document's view mode)")
	renderCmd.Flags().String("out", "", "output file (default: stdout)")
	addPresentationFlags(renderCmd)

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	if err := applyPresentationFlags(cmd, &doc); err != nil {
		return err
	}

	mode := doc.ViewMode
	if m, _ := cmd.Flags().GetString("mode"); m != "" {
		switch types.ViewMode(m) {
		case types.ViewPrint, types.ViewWeb:
			mode = types.ViewMode(m)
		default:
			return fmt.Errorf("unknown view mode %q (want print or web)", m)
		}
	}

	var w io.Writer = os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	return render.Write(w, render.View(doc, mode))
}
