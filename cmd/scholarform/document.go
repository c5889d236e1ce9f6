package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarform/internal/container"
	"github.com/pdiddy/scholarform/internal/convert"
	"github.com/pdiddy/scholarform/internal/docio"
	"github.com/pdiddy/scholarform/internal/ingest"
	"github.com/pdiddy/scholarform/internal/project"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// newPipeline builds an ingest pipeline from cfg. When a conversion image
// is configured and a container runtime is present, formats without a
// built-in extractor are piped through the image.
func newPipeline(ctx context.Context, cfg types.PipelineConfig) *ingest.Pipeline {
	var opts []convert.RegistryOption
	if image := cfg.Convert.ContainerImage; image != "" {
		if x, err := containerFallback(ctx, image, cfg); err != nil {
			log.Warn("Container conversion disabled", zap.String("image", image), zap.Error(err))
		} else {
			opts = append(opts, convert.WithFallback(x))
		}
	}
	return ingest.New(
		ingest.WithRegistry(convert.NewRegistry(opts...)),
		ingest.WithConfig(cfg.Ingest),
		ingest.WithLogger(log.Logger),
	)
}

func containerFallback(ctx context.Context, image string, cfg types.PipelineConfig) (*convert.ContainerExtractor, error) {
	rt, err := container.Detect(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("Container runtime detected", zap.String("runtime", rt.Name()))
	return convert.NewContainerExtractor(ctx, rt, image, cfg.Convert.Timeout)
}

// loadDocument reads a snapshot, assembles a paper project directory, or
// ingests path when it is an upload.
func loadDocument(cmd *cobra.Command, path string) (types.Document, error) {
	if docio.IsSnapshot(path) {
		return docio.Load(path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return project.Load(path)
	}
	doc, err := newPipeline(cmd.Context(), loadConfig()).IngestFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("ingesting %s: %w", path, err)
	}
	return doc, nil
}

// addPresentationFlags registers the flags that override a document's
// presentation settings.
func addPresentationFlags(cmd *cobra.Command) {
	cmd.Flags().String("style", "", "academic style: APA, MLA, Chicago, or Custom")
	cmd.Flags().String("paper", "", "paper size: a4, letter, or legal")
	cmd.Flags().Bool("show-index", false, "include a table of contents page")
}

// applyPresentationFlags overrides doc's settings with the flags the user
// set. A style change also adopts the style's recommended paper unless
// --paper is given.
func applyPresentationFlags(cmd *cobra.Command, doc *types.Document) error {
	flags := cmd.Flags()
	if flags.Changed("style") {
		name, _ := flags.GetString("style")
		doc.Style = style.ParseStyle(name)
		doc.PaperSize = style.RecommendedPaperSize(doc.Style)
	}
	if flags.Changed("paper") {
		name, _ := flags.GetString("paper")
		size, ok := style.ParsePaperSize(name)
		if !ok {
			return fmt.Errorf("unknown paper size %q (want a4, letter, or legal)", name)
		}
		doc.PaperSize = size
	}
	if flags.Changed("show-index") {
		doc.ShowIndex, _ = flags.GetBool("show-index")
	}
	return nil
}
