// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholarform CLI. It ingests
// uploads into document snapshots and renders or exports them.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholarform/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// log is opened in PersistentPreRunE and closed when main returns.
var log = logging.Nop()

// rootCmd is the base command for the scholarform CLI.
var rootCmd = &cobra.Command{
	Use:   "scholarform",
	Short: "Turn drafts into formatted academic papers",
	Long: `scholarform ingests PDF, DOCX, RTF, Markdown, and plain-text drafts into a
structured document: titled sections plus a parsed bibliography. Documents are
saved as YAML or JSON snapshots that every other command accepts.

From a document scholarform renders a paginated print view or a continuous
web view, exports DOCX, Markdown, CSL-YAML, or BibTeX, and reports the page
plan of its academic style (APA, MLA, Chicago, or Custom).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(loadConfig().Logging, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholarform.yaml or ~/.config/scholarform/scholarform.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "console log level: none, normal, or debug")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// A .env file seeds SCHOLARFORM_* variables without overriding the shell.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholarform")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholarform"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("SCHOLARFORM")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	err := rootCmd.Execute()
	_ = log.Close()
	if err != nil {
		os.Exit(1)
	}
}
