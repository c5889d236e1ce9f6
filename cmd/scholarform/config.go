package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/scholarform/internal/logging"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// envKeyReplacer maps "ingest.max_bytes" to SCHOLARFORM_INGEST_MAX_BYTES.
var envKeyReplacer = strings.NewReplacer(".", "_")

const (
	defaultOutputDir = "out"
	defaultTimeout   = 2 * time.Minute
	defaultMaxBytes  = 50 << 20
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("ingest.style", string(types.StyleAPA))
	v.SetDefault("ingest.paper_size", "")
	v.SetDefault("ingest.view_mode", string(types.ViewPrint))
	v.SetDefault("ingest.show_index", false)
	v.SetDefault("ingest.max_bytes", defaultMaxBytes)
	v.SetDefault("convert.container_image", "")
	v.SetDefault("convert.timeout", defaultTimeout)
	v.SetDefault("output.dir", defaultOutputDir)
	v.SetDefault("logging.level", logging.LevelNormal)
	v.SetDefault("logging.destination", "")
}

// loadConfig reads the merged flag, environment, file, and default values.
func loadConfig() types.PipelineConfig {
	return configFrom(viper.GetViper())
}

func configFrom(v *viper.Viper) types.PipelineConfig {
	return types.PipelineConfig{
		Ingest: types.IngestConfig{
			Style:     style.ParseStyle(v.GetString("ingest.style")),
			PaperSize: types.PaperSize(v.GetString("ingest.paper_size")),
			ViewMode:  types.ViewMode(v.GetString("ingest.view_mode")),
			ShowIndex: v.GetBool("ingest.show_index"),
			MaxBytes:  v.GetInt64("ingest.max_bytes"),
		},
		Convert: types.ConvertConfig{
			ContainerImage: v.GetString("convert.container_image"),
			Timeout:        v.GetDuration("convert.timeout"),
		},
		Output: types.OutputConfig{
			Dir: v.GetString("output.dir"),
		},
		Logging: types.LoggingConfig{
			Level:       v.GetString("logging.level"),
			Destination: v.GetString("logging.destination"),
		},
	}
}
