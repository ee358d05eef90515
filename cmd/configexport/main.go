// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the configexport CLI.
// configexport converts INI-style configuration files into timestamped JSON.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/configexport/internal/logger"
	"github.com/pdiddy/configexport/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// configName is the base name of the config file looked up in the
// working directory and in ~/.config/configexport.
const configName = "configexport"

var configHelp = fmt.Sprintf("config file (default: ./%[1]s.yaml or ~/.config/%[1]s/%[1]s.yaml)", configName)

// zlog is the process logger, built from the configured level before any
// subcommand runs.
var zlog = zap.NewNop()

// appConfig holds settings merged from the config file, environment, and flags.
var appConfig types.AppConfig

// rootCmd is the base command for the configexport CLI.
var rootCmd = &cobra.Command{
	Use:   "configexport",
	Short: "Convert INI configuration files to timestamped JSON",
	Long: `configexport reads an INI-style configuration file ([Section] headers
followed by key = value lines), shows what it parsed, and writes it as a
JSON document stamped with the UTC export time.

Paths not given on the command line are asked for interactively.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg

		l, err := logger.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		zlog = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zlog.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", configHelp)
	flags.String("log-level", logger.LevelDefault, "log level: debug, info, warn, error, or none")
	flags.String("format", string(types.FormatJSON), "output format: json or yaml")
	flags.Int("indent", types.DefaultIndent, "spaces per indent level in JSON output")
	flags.Bool("strict", false, "reject duplicate sections and keys instead of keeping the last one")

	for key, flag := range map[string]string{
		"log_level": "log-level",
		"format":    "format",
		"indent":    "indent",
		"strict":    "strict",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	viper.SetEnvPrefix("CONFIGEXPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the merged viper settings and checks them.
func loadConfig() (types.AppConfig, error) {
	cfg := types.AppConfig{
		Export: types.ExportConfig{
			Format: types.OutputFormat(viper.GetString("format")),
			Indent: viper.GetInt("indent"),
		},
		Parse: types.ParseConfig{
			Strict: viper.GetBool("strict"),
		},
		LogLevel: viper.GetString("log_level"),
	}
	switch cfg.Export.Format {
	case types.FormatJSON, types.FormatYAML:
	default:
		return cfg, fmt.Errorf("unsupported format %q: use json or yaml", cfg.Export.Format)
	}
	if cfg.Export.Indent < 0 {
		return cfg, fmt.Errorf("indent must not be negative, got %d", cfg.Export.Indent)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
