package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarform/internal/docio"
	"github.com/pdiddy/scholarform/internal/project"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble <project-dir>",
	Short: "Assemble a paper project directory into a document snapshot",
	Long: `Assemble builds a document from a paper project: project.yaml holds the
title block and style, numbered Markdown files (01-introduction.md,
02-methods.md, ...) hold the sections in natural order, and references.yaml
or references.md holds the bibliography.

Inline citation keys such as [Smith2020] are checked against the
bibliography. Unknown keys are reported; with --strict they fail the command.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().String("format", "yaml", "snapshot encoding: yaml or json")
	assembleCmd.Flags().String("out", "", "output directory (default: output.dir)")
	assembleCmd.Flags().Bool("strict", false, "fail when a citation key has no bibliography entry")

	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	dir := args[0]

	format, _ := cmd.Flags().GetString("format")
	enc, err := docio.ParseEncoding(format)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = loadConfig().Output.Dir
	}

	doc, err := project.Load(dir)
	if err != nil {
		return err
	}

	missing, err := project.ValidateCitations(dir)
	if err != nil {
		return err
	}
	for _, key := range missing {
		log.Warn("Citation key has no bibliography entry", zap.String("key", key))
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(missing) > 0 {
		return fmt.Errorf("%d unknown citation key(s): %v", len(missing), missing)
	}

	dest := filepath.Join(outDir, filepath.Base(filepath.Clean(dir))+enc.Ext())
	if err := docio.Save(dest, doc); err != nil {
		return fmt.Errorf("saving %s: %w", dest, err)
	}
	fmt.Fprintf(os.Stdout, "assembled: %s (%d sections, %d citations) -> %s\n",
		dir, len(doc.Sections), len(doc.Bibliography), dest)
	return nil
}
