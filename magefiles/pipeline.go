//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func bin() string {
	return filepath.Join(binDir, binName)
}

// Ingest converts every file in dir into a YAML snapshot under out/snapshots.
func Ingest(dir string) error {
	mg.Deps(Build, Init)
	files, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files in %s", dir)
	}
	args := append([]string{"ingest", "--out", filepath.Join(outDir, "snapshots")}, files...)
	return sh.RunV(bin(), args...)
}

// Export writes a snapshot in every supported export format to out/exports.
func Export(snapshot string) error {
	mg.Deps(Build, Init)
	env := map[string]string{"SCHOLARFORM_OUTPUT_DIR": filepath.Join(outDir, "exports")}
	for _, format := range []string{"docx", "md", "csl", "bibtex"} {
		if err := sh.RunWithV(env, bin(), "export", "--format", format, snapshot); err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
	}
	return nil
}

// Render writes the print and web views of a snapshot next to its exports.
func Render(snapshot string) error {
	mg.Deps(Build, Init)
	for _, mode := range []string{"print", "web"} {
		out := filepath.Join(outDir, "exports", mode+".xhtml")
		if err := sh.RunV(bin(), "render", "--mode", mode, "--out", out, snapshot); err != nil {
			return fmt.Errorf("render %s: %w", mode, err)
		}
	}
	return nil
}
