package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/tsload/tsload/internal/app"
	"github.com/tsload/tsload/internal/cliconfig"
)

const helpDescription = `
Send a line-oriented data file in parallel chunks to a QuestDB or InfluxDB
ingestion endpoint.

The file is split into fixed-size chunks (a number of lines each); every
chunk becomes one HTTP write request, spread across a bounded pool of
workers. Per-chunk progress is streamed to stderr and a summary report is
printed at the end. Individual chunk failures never abort the run.
`

var exampleUsage = strings.TrimSpace(`
  tsload --host http://127.0.0.1:9000 --file data.lp --backend questdb --chunk-size 10000
  tsload --host http://127.0.0.1:8181 --file data.lp --backend influxdb --chunk-size 5000 --workers 8 --omit-timestamp
  tsload query --host http://127.0.0.1:8181 --backend influxdb "SELECT count(*) FROM cpu"
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "tsload",
		Short:   "Send file data in parallel chunks to a QuestDB or InfluxDB endpoint",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.tsload/config.toml), then
			// apply env and flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment variables (TSLOAD_*) override file config but are
			// overridden by flags (checked via changed map).
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rep, err := app.Run(ctx, cfg, log)
			if err != nil {
				return err
			}

			rep.WriteSummary(os.Stdout)
			if cfg.JSONOut != "" {
				if err := rep.WriteJSON(cfg.JSONOut); err != nil {
					return err
				}
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.tsload/config.toml)")
	root.Flags().StringVar(&cfg.Host, "host", cfg.Host, "host URL (e.g., http://127.0.0.1:9000)")
	root.Flags().StringVar(&cfg.File, "file", cfg.File, "path to the input data file")
	root.Flags().StringVar(&cfg.Backend, "backend", cfg.Backend, "target backend: questdb or influxdb")
	root.Flags().IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "number of lines per chunk")
	root.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	root.Flags().IntVar(&cfg.MaxRPS, "max-rps", cfg.MaxRPS, "cap on write requests per second (0 = no limit)")
	root.Flags().BoolVar(&cfg.OmitTimestamp, "omit-timestamp", cfg.OmitTimestamp, "remove the timestamp (last token) from each row before sending")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per request")
	root.Flags().StringVar(&cfg.JSONOut, "json-out", cfg.JSONOut, "write the summary report as JSON to this file")

	root.AddCommand(newQueryCommand(log))

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("tsload")
		os.Exit(1)
	}
}
