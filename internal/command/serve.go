package command

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/handlekit/internal/app"
	"github.com/dmitrymomot/handlekit/internal/web"
	"github.com/dmitrymomot/handlekit/pkg/httpserver"
	"github.com/dmitrymomot/handlekit/pkg/logger"
	"github.com/dmitrymomot/handlekit/pkg/ratelimiter"
	"github.com/dmitrymomot/handlekit/pkg/redis"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address, overrides HTTP_ADDR",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}

	log := cfg.Logger(c.App.ErrWriter)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []web.Option{
		web.WithLogger(log),
		web.WithQRSize(cfg.QRSize),
		web.WithTrustProxy(cfg.TrustProxy),
	}
	if cfg.RateLimit.Enabled() {
		store, check, closeStore, err := rateLimitStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()
		if check != nil {
			opts = append(opts, web.WithReadinessChecks(check))
		}

		bucket, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			return err
		}
		opts = append(opts, web.WithRateLimit(bucket))
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	router := web.NewRouter(opts...)

	log.InfoContext(ctx, "starting handlekit", logger.Event("serve"))
	return srv.Run(ctx, router)
}

// rateLimitStore shares buckets through Redis when REDIS_URL is set and
// keeps them in memory otherwise. The check is nil for the memory store.
func rateLimitStore(ctx context.Context, cfg app.Config, log *slog.Logger) (ratelimiter.Store, func(context.Context) error, func(), error) {
	log = log.With(logger.Component("ratelimiter"))

	if !cfg.Redis.Enabled() {
		store := ratelimiter.NewMemoryStore()
		log.InfoContext(ctx, "rate limiting in memory")
		return store, nil, store.Close, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	log.InfoContext(ctx, "rate limiting through redis")
	return ratelimiter.NewRedisStore(client), redis.Healthcheck(client), func() { _ = client.Close() }, nil
}
