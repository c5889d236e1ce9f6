package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarform/internal/layout"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <document>",
	Short: "Show the page plan of a document",
	Long: `Layout prints the logical page of the title page, table of contents, each
section, and the bibliography under the document's academic style.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().Bool("json", false, "output the page plan as JSON")
	addPresentationFlags(layoutCmd)

	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	if err := applyPresentationFlags(cmd, &doc); err != nil {
		return err
	}

	plan := layout.Compute(doc)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	printPlan(os.Stdout, doc, plan)
	return nil
}

func printPlan(w io.Writer, doc types.Document, plan layout.Pagination) {
	rules := style.For(doc.Style)
	page := func(n int) string { return rules.PageNumber(n, doc.Metadata.Author) }

	fmt.Fprintf(w, "Style: %s (%s)\n\n", rules.Style, style.PaperFor(doc.PaperSize).Label)
	if plan.TitlePage {
		fmt.Fprintf(w, "%-8s %s\n", page(1), "Title page")
	}
	if plan.HasTOC() {
		fmt.Fprintf(w, "%-8s %s\n", page(plan.TOCPage), "Table of Contents")
	}

	titles := make(map[string]string, len(doc.Sections))
	for _, s := range doc.Sections {
		titles[s.ID] = s.Title
	}
	for _, id := range plan.SectionOrder {
		fmt.Fprintf(w, "%-8s %s\n", page(plan.PageOf(id)), titles[id])
	}
	fmt.Fprintf(w, "%-8s %s\n", page(plan.BibliographyPage), style.BibliographyHeading(doc.Style))
}
