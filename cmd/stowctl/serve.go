package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuemby/stow/pkg/kv"
	"github.com/cuemby/stow/pkg/log"
	"github.com/cuemby/stow/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve <uri>",
	Short: "Open a database and serve /metrics, /health, /ready, /live until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.MetricsAddr == "" {
			return fmt.Errorf("serve requires --metrics-addr or a config file setting metricsAddr")
		}

		uri := args[0]
		db, err := kv.Open(uri, kv.FlagCreateIfNotExists)
		if err != nil {
			return err
		}
		defer db.Close()

		metrics.RegisterComponent("driver", true, "")

		var sizeFunc func() (int64, error)
		if path, ok := pathIfBoltURI(uri); ok {
			sizeFunc = func() (int64, error) {
				info, err := os.Stat(path)
				if err != nil {
					return 0, err
				}
				return info.Size(), nil
			}
		}
		collector := metrics.NewCollector(db, sizeFunc)
		collector.Start()
		defer collector.Stop()

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.Handle("/health", metrics.HealthHandler())
		mux.Handle("/ready", metrics.ReadyHandler())
		mux.Handle("/live", metrics.LivenessHandler())

		log.WithComponent("stowctl").Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
		return http.ListenAndServe(cfg.MetricsAddr, mux)
	},
}

// pathIfBoltURI returns the filesystem path backing a "bolt://" URI, for
// stat-ing its size; it reports ok=false for any other scheme.
func pathIfBoltURI(uri string) (path string, ok bool) {
	const prefix = "bolt://"
	if len(uri) <= len(prefix) || uri[:len(prefix)] != prefix {
		return "", false
	}
	return uri[len(prefix):], true
}
