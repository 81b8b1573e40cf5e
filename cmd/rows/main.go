package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-rows/internal/config"
	"github.com/joeblew999/plat-rows/internal/logging"
	"github.com/joeblew999/plat-rows/internal/server"
)

// Options defines all CLI flags and env vars for the rows server.
// Flags: --host, --port, --config, --verbose
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_CONFIG, SERVICE_VERBOSE
type Options struct {
	Host    string `doc:"Host to bind to" default:"0.0.0.0"`
	Port    int    `doc:"Port to listen on" short:"p" default:"8087"`
	Config  string `doc:"Path to a rows.yaml file with generator defaults"`
	Verbose bool   `doc:"Enable debug logging" short:"v"`
}

// setup loads the generator config and builds the logger.
func setup(opts *Options) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newServer(opts *Options, cfg *config.Config, logger *zap.Logger) *server.Server {
	return server.New(server.Config{
		Host:     opts.Host,
		Port:     fmt.Sprintf("%d", opts.Port),
		Defaults: cfg.Options(),
		Logger:   logger,
	})
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		cfg, logger, err := setup(opts)
		if err != nil {
			log.Fatalf("Startup error: %v", err)
		}
		srv := newServer(opts, cfg, logger)

		hooks.OnStart(func() {
			defer logger.Sync()

			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			logger.Info("plat-rows API server starting",
				zap.String("url", baseURL),
				zap.String("docs", baseURL+"/docs"),
				zap.String("openapi", baseURL+"/openapi.json"),
				zap.String("metrics", baseURL+"/metrics"),
				zap.Float64("spacing_m", cfg.SpacingM))

			if err := http.ListenAndServe(addr, srv); err != nil {
				logger.Fatal("Server error", zap.Error(err))
			}
		})
	})

	cli.Root().Use = "rows"
	cli.Root().Short = "Guidance row network generator"
	cli.Root().Version = "0.1.0"

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			cfg, logger, err := setup(opts)
			if err != nil {
				fatal("Error: %v", err)
			}
			spec := newServer(opts, cfg, logger).OpenAPI()

			useYAML, _ := cmd.Flags().GetBool("yaml")

			var output []byte
			if useYAML {
				output, err = yaml.Marshal(spec)
			} else {
				output, err = json.MarshalIndent(spec, "", "  ")
			}
			if err != nil {
				fatal("Error marshaling spec: %v", err)
			}
			fmt.Println(string(output))
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	// config subcommand: print the effective generator defaults
	cli.Root().AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective generator configuration as YAML",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			cfg, err := config.Load(opts.Config)
			if err != nil {
				fatal("Error: %v", err)
			}
			output, err := yaml.Marshal(cfg)
			if err != nil {
				fatal("Error marshaling config: %v", err)
			}
			fmt.Print(string(output))
		}),
	})

	cli.Root().AddCommand(generateCommand())

	cli.Run()
}
