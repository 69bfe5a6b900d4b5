package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/stitchline/stitchline/internal/api"
	"github.com/stitchline/stitchline/pkg/cache"
	"github.com/stitchline/stitchline/pkg/pipeline"
)

// serveCommand creates the serve command: run the HTTP planning API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP planning API",
		Long: `Run the HTTP planning API.

Endpoints:
  POST /api/v1/plans   Generate a floor plan from a bulletin
  POST /api/v1/flow    Render an operation flow diagram
  GET  /healthz        Health check

By default results are cached on disk. Pass --redis-addr or --mongo-uri to
share the cache across instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), serveOptions{
				addr:      addr,
				redisAddr: redisAddr,
				mongoURI:  mongoURI,
				noCache:   noCache,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for the result cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for the result cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

type serveOptions struct {
	addr      string
	redisAddr string
	mongoURI  string
	noCache   bool
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	store, err := c.newServeCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	server := api.NewServer(runner, c.Logger)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("API listening", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// newServeCache picks the cache backend for the API. Redis wins over Mongo
// when both are given; neither falls back to the local file cache.
func (c *CLI) newServeCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	case opts.mongoURI != "":
		return cache.NewMongoCache(ctx, cache.MongoConfig{URI: opts.mongoURI})
	default:
		return newCache(false)
	}
}
