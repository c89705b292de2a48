// Package main provides the espanso-ontology binary entry point.
// It reads an OWL/RDF ontology document and writes an espanso match file
// (packages.yml) with one trigger → expansion set per class and object
// property.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/krerkkiat/espanso-ontology/config"
	"github.com/krerkkiat/espanso-ontology/pipeline"
)

const (
	Version   = "0.2.0"
	BuildTime = "dev"
	appName   = "espanso-ontology"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath  string
		outputPath  string
		strategy    string
		marker      string
		vocabPrefix string
		preferLabel bool
		readerMode  string
		watch       bool
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "espanso-ontology <FILE>",
		Short: "Generate espanso triggers from an OWL ontology",
		Long: `Espanso-ontology reads an OWL/RDF ontology document and derives short
"trigger → expansion" pairs for the espanso text expander, one set per
ontology class and object property.

FILE is an RDF/XML document, or a glob pattern (** supported) matching
several documents that are merged into one graph. The match records are
written to packages.yml in the working directory unless --output says
otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := flagOverrides{
				output:      flagValue(cmd, "output", outputPath),
				strategy:    flagValue(cmd, "strategy", strategy),
				marker:      flagValue(cmd, "marker", marker),
				vocabPrefix: flagValue(cmd, "prefix", vocabPrefix),
				readerMode:  flagValue(cmd, "reader-mode", readerMode),
			}
			if cmd.Flags().Changed("prefer-label") {
				flags.preferLabel = &preferLabel
			}
			if cmd.Flags().Changed("watch") {
				flags.watch = &watch
			}
			return run(args[0], configPath, logLevel, flags)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report file path (default packages.yml)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Synthesis strategy (label, numeric)")
	cmd.Flags().StringVar(&marker, "marker", "", "Trigger marker character (default \":\")")
	cmd.Flags().StringVar(&vocabPrefix, "prefix", "", "Vocabulary prefix for numeric triggers (default \"bfo\")")
	cmd.Flags().BoolVar(&preferLabel, "prefer-label", true, "Build triggers from English labels when present")
	cmd.Flags().StringVar(&readerMode, "reader-mode", "", "RDF/XML reader mode (lax, strict)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Regenerate the report when input files change")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// flagOverrides carries CLI values that take precedence over the config
// file. Pointers distinguish "flag set" from a default bool value.
type flagOverrides struct {
	output      string
	strategy    string
	marker      string
	vocabPrefix string
	readerMode  string
	preferLabel *bool
	watch       *bool
}

func flagValue(cmd *cobra.Command, name, value string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return ""
}

func run(pattern, configPath, logLevel string, flags flagOverrides) error {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	if cfg.Watch.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return p.Watch(ctx, pattern)
	}
	return p.Run(pattern)
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadFromFile(configPath)
}

func applyOverrides(cfg *config.Config, flags flagOverrides) {
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.strategy != "" {
		cfg.Synthesis.Strategy = flags.strategy
	}
	if flags.marker != "" {
		cfg.Synthesis.Marker = flags.marker
	}
	if flags.vocabPrefix != "" {
		cfg.Synthesis.VocabPrefix = flags.vocabPrefix
	}
	if flags.readerMode != "" {
		cfg.Ontology.ReaderMode = flags.readerMode
	}
	if flags.preferLabel != nil {
		cfg.Synthesis.PreferLabel = *flags.preferLabel
	}
	if flags.watch != nil {
		cfg.Watch.Enabled = *flags.watch
	}
}
