package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/server"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// cleanupInterval is how often the in-memory store drops expired entries.
const cleanupInterval = 5 * time.Minute

// serveCommand creates the HTTP service command.
func (c *CLI) serveCommand() *cobra.Command {
	var srv config.Server
	var settings *settingsFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve word clouds over HTTP",
		Long: `Serve word clouds over HTTP.

  POST /api/wordcloud        {"text": "...", "formats": ["png"], ...}
  GET  /api/wordcloud/{id}   download (?format=svg|json|jpeg)
  GET  /health

Settings from the config file and flags are the defaults for every request;
request fields override them. Generated clouds are kept for the artifact TTL,
in Redis when --redis-addr is set and in memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd.Flags(), settings)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("addr") {
				cfg.Server.Addr = srv.Addr
			}
			if fs.Changed("redis-addr") {
				cfg.Server.RedisAddr = srv.RedisAddr
			}
			if fs.Changed("redis-password") {
				cfg.Server.RedisPassword = srv.RedisPassword
			}
			if fs.Changed("redis-db") {
				cfg.Server.RedisDB = srv.RedisDB
			}
			if fs.Changed("ttl") {
				cfg.Server.ArtifactTTL = srv.ArtifactTTL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(runContext(cmd), cfg)
		},
	}

	defaults := config.Default().Server
	settings = addSettingsFlags(cmd.Flags())
	cmd.Flags().StringVar(&srv.Addr, "addr", defaults.Addr, "listen address")
	cmd.Flags().StringVar(&srv.RedisAddr, "redis-addr", "", "Redis address for the artifact store (host:port)")
	cmd.Flags().StringVar(&srv.RedisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&srv.RedisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&srv.ArtifactTTL, "ttl", defaults.ArtifactTTL, "how long generated clouds stay downloadable")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	store, err := newStore(ctx, cfg.Server)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, versionedKeyer(), c.Logger)
	defer runner.Close()

	if mem, ok := store.(*cache.MemoryCache); ok {
		go cleanupLoop(ctx, mem, cleanupInterval)
	}

	defaults := pipeline.FromConfig(cfg)
	s := server.New(runner, store, server.Config{
		Defaults:    defaults,
		ArtifactTTL: cfg.Server.ArtifactTTLDuration(),
		Logger:      c.Logger,
	})

	printInfo("Listening on %s", StyleValue.Render(cfg.Server.Addr))
	if err := s.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// newStore connects to Redis when configured, else keeps artifacts in
// memory.
func newStore(ctx context.Context, srv config.Server) (cache.Cache, error) {
	if srv.RedisAddr == "" {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     srv.RedisAddr,
		Password: srv.RedisPassword,
		DB:       srv.RedisDB,
		Prefix:   appName + ":",
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", srv.RedisAddr, err)
	}
	return rc, nil
}

func cleanupLoop(ctx context.Context, c *cache.MemoryCache, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Cleanup(ctx)
		}
	}
}
