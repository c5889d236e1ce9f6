package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarform/internal/cite"
	"github.com/pdiddy/scholarform/internal/style"
)

var citeCmd = &cobra.Command{
	Use:   "cite <document>",
	Short: "Print a document's bibliography in an academic style",
	Long: `Cite prints the parsed bibliography of a document, sorted by first-author
surname and formatted in the document's style or the one given by --style.`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

func init() {
	citeCmd.Flags().String("style", "", "academic style: APA, MLA, Chicago, or Custom")
	citeCmd.Flags().Bool("markdown", false, "mark italics with asterisks")

	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("style") {
		name, _ := cmd.Flags().GetString("style")
		doc.Style = style.ParseStyle(name)
	}
	markdown, _ := cmd.Flags().GetBool("markdown")

	fmt.Fprintln(os.Stdout, style.BibliographyHeading(doc.Style))
	for _, c := range cite.Sorted(doc.Bibliography) {
		runs := cite.FormatRuns(c, doc.Style)
		if markdown {
			fmt.Fprintln(os.Stdout, runs.Markdown())
			continue
		}
		fmt.Fprintln(os.Stdout, runs.Plain())
	}
	return nil
}
