package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/stow/pkg/config"
	"github.com/cuemby/stow/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// cfg is populated by initConfig once flags have been parsed, before any
// subcommand's RunE runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "stowctl",
	Short: "stowctl - inspect and drive a stow bucket-namespaced key-value store",
	Long: `stowctl is a command-line client for stow, an embedded,
transactional key-value store with a bucket-namespaced data model and a
thin ORM layer on top.

It opens a database by URI (bolt://path/to/file.db, or memory://anything
for an ephemeral scratch store) and lets you create and inspect buckets,
read and write raw key/value entries, and run the ORM round-trip demo.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"stowctl version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Address to serve /metrics, /health, /ready, /live on (serve command only)")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(bucketCmd)
	rootCmd.AddCommand(kvCmd)
	rootCmd.AddCommand(ormCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	loaded, err := config.Load(configPath)
	if err != nil {
		fmt.Println("warning:", err)
		loaded = config.Default()
	}
	cfg = loaded

	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); rootCmd.PersistentFlags().Changed("log-level") {
		cfg.LogLevel = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("log-json"); v {
		cfg.LogJSON = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("metrics-addr"); v != "" {
		cfg.MetricsAddr = v
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.LogLevel),
		JSONOutput: cfg.LogJSON,
	})
}
