// Package tab parses tab command flags and starts the tab runtime.
package tab

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/cafe/internal/platform/cmd"
	server "github.com/louisbranch/cafe/internal/services/tab/app"
)

// EnvPrefix namespaces the tab service environment variables.
const EnvPrefix = "TAB_"

// Config holds tab command configuration.
type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8088"`
	GRPCAddr      string `env:"GRPC_ADDR" envDefault:":8089"`
	DBPath        string `env:"DB_PATH" envDefault:"data/tab-events.db"`
	AppendRetries int    `env:"APPEND_RETRIES" envDefault:"3"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, EnvPrefix, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	if cfg.AppendRetries < 0 {
		return Config{}, fmt.Errorf("append retries must be >= 0, got %d", cfg.AppendRetries)
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The tab HTTP API listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "The gRPC health listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the tab event journal")
	fs.IntVar(&cfg.AppendRetries, "append-retries", cfg.AppendRetries, "Retries after a concurrent append")
}

// Run starts the tab service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTab, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr:      cfg.HTTPAddr,
			GRPCAddr:      cfg.GRPCAddr,
			DBPath:        cfg.DBPath,
			AppendRetries: retries(cfg.AppendRetries),
		})
	})
}

// retries maps the configured count onto engine.Handler.Retries, where zero
// means the default and negative disables retrying.
func retries(configured int) int {
	if configured == 0 {
		return -1
	}
	return configured
}
