package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/pdiddy/scholarform/internal/convert"
	"github.com/pdiddy/scholarform/internal/ingest"
	"github.com/pdiddy/scholarform/internal/layout"
	"github.com/pdiddy/scholarform/pkg/types"
)

func TestConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := configFrom(v)

	assert.Equal(t, types.StyleAPA, cfg.Ingest.Style)
	assert.Equal(t, types.ViewPrint, cfg.Ingest.ViewMode)
	assert.Empty(t, cfg.Ingest.PaperSize)
	assert.EqualValues(t, defaultMaxBytes, cfg.Ingest.MaxBytes)
	assert.Equal(t, defaultTimeout, cfg.Convert.Timeout)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "normal", cfg.Logging.Level)
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("SCHOLARFORM_INGEST_STYLE", "mla")
	t.Setenv("SCHOLARFORM_INGEST_SHOW_INDEX", "true")
	t.Setenv("SCHOLARFORM_CONVERT_TIMEOUT", "30s")
	t.Setenv("SCHOLARFORM_CONVERT_CONTAINER_IMAGE", "markitdown:latest")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SCHOLARFORM")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	cfg := configFrom(v)

	assert.Equal(t, types.StyleMLA, cfg.Ingest.Style)
	assert.True(t, cfg.Ingest.ShowIndex)
	assert.Equal(t, 30*time.Second, cfg.Convert.Timeout)
	assert.Equal(t, "markitdown:latest", cfg.Convert.ContainerImage)
}

func testDoc() types.Document {
	return types.Document{
		Metadata: types.DocumentMetadata{Title: "On Things", Author: "Jane Doe"},
		Sections: []types.Section{
			{ID: "section-1", Title: "Introduction"},
			{ID: "section-2", Title: "Results"},
		},
		Style:     types.StyleMLA,
		PaperSize: types.PaperLetter,
	}
}

func TestPrintPlan(t *testing.T) {
	doc := testDoc()
	var buf bytes.Buffer
	printPlan(&buf, doc, layout.Compute(doc))

	assert.Equal(t,
		"Style: MLA (US Letter (8.5 x 11in))\n\n"+
			"Doe 1    Introduction\n"+
			"Doe 2    Results\n"+
			"Doe 3    Works Cited\n",
		buf.String())
}

func TestApplyPresentationFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(d types.Document) types.Document
		wantErr string
	}{
		{
			name: "no flags leave the document alone",
			want: func(d types.Document) types.Document { return d },
		},
		{
			name: "style adopts the recommended paper",
			args: []string{"--style", "chicago"},
			want: func(d types.Document) types.Document {
				d.Style = types.StyleChicago
				d.PaperSize = types.PaperA4
				return d
			},
		},
		{
			name: "explicit paper wins over the recommendation",
			args: []string{"--style", "chicago", "--paper", "Legal", "--show-index"},
			want: func(d types.Document) types.Document {
				d.Style = types.StyleChicago
				d.PaperSize = types.PaperLegal
				d.ShowIndex = true
				return d
			},
		},
		{
			name:    "unknown paper",
			args:    []string{"--paper", "tabloid"},
			wantErr: `unknown paper size "tabloid"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			addPresentationFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			doc := testDoc()
			err := applyPresentationFlags(cmd, &doc)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(testDoc()), doc)
		})
	}
}

func TestIngestFailure(t *testing.T) {
	assert.NoError(t, ingestFailure(ingest.BatchResult{Ingested: 2}, nil))

	errTimeout := errors.New("conversion timed out")
	errs := multierr.Combine(
		fmt.Errorf("%w: empty.txt", convert.ErrUnreadable),
		errTimeout,
	)
	err := ingestFailure(ingest.BatchResult{Ingested: 1, Failed: 2}, errs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 file(s) failed ingestion")
	assert.ErrorIs(t, err, convert.ErrUnreadable)
	assert.ErrorIs(t, err, errTimeout)
}
