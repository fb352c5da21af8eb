package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/cache"
	"github.com/matzehuels/repograph/pkg/config"
	"github.com/matzehuels/repograph/pkg/pipeline"
	"github.com/matzehuels/repograph/pkg/server"
)

// serveCommand creates the "serve" command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, cacheKind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve graph building, layout and rendering over HTTP.

Settings come from the [server] table of the config file and can be
overridden by REPOGRAPH_ADDR, REPOGRAPH_CACHE, REPOGRAPH_REDIS_URL,
REPOGRAPH_CACHE_TTL and REPOGRAPH_MAX_BODY_BYTES. A .env file in the working
directory is loaded first.`,
		Example: `  repograph serve
  repograph serve --addr :9090 --cache redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg := c.Config
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("cache") {
				cfg.Server.Cache = cacheKind
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			runner, err := c.serverRunner(ctx, cfg.Server)
			if err != nil {
				return err
			}
			defer runner.Close()

			return server.New(runner, server.OptionsFromConfig(cfg, c.Logger)).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&cacheKind, "cache", "", "cache backend: memory, redis or none")

	return cmd
}

// serverRunner creates a runner backed by the configured shared cache.
func (c *CLI) serverRunner(ctx context.Context, s config.Server) (*pipeline.Runner, error) {
	var (
		backend cache.Cache
		keyer   cache.Keyer
	)

	switch s.Cache {
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{URL: s.RedisURL})
		if err != nil {
			return nil, err
		}
		backend = rc
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), s.KeyPrefix)
	case config.CacheNone:
		backend = cache.NewNullCache()
	default:
		mc, err := cache.NewMemoryCache(s.CacheSize)
		if err != nil {
			return nil, err
		}
		backend = mc
	}

	runner := pipeline.NewRunner(backend, keyer, c.Logger)
	runner.TTL = s.CacheTTL
	c.Logger.Debug("cache ready", "backend", backend.Name(), "ttl", s.CacheTTL)
	return runner, nil
}
