// Blog
// ====
// An articles resource served as HTML pages and, with Accept:
// application/json or a .json suffix, as JSON. Listing and showing are
// public; everything else needs the configured basic-auth credentials.
//
// Also check the -routes flag for generated route docs,
// to run yourself do: `go run . -routes`
//
// Boot the server:
// ----------------
// $ BLOG_AUTH_USERNAME=jenjen BLOG_AUTH_PASSWORD=secret go run .
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/articles.json
// []
//
// $ curl -u jenjen:secret -H 'Content-Type: application/json' -d '{"article": {"title": "Hello", "body": "World", "status": "draft"}}' http://localhost:3333/articles.json
// {"id":1,"title":"Hello","body":"World","status":"draft",...,"url":"/articles/1"}
//
// $ curl -u jenjen:secret -X DELETE -i http://localhost:3333/articles/1
// HTTP/1.1 303 See Other
// Location: /
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/events"
	"github.com/SergeyParamoshkin/blog/internal/logger"
	"github.com/SergeyParamoshkin/blog/internal/server"
	"github.com/SergeyParamoshkin/blog/internal/store"
	"github.com/SergeyParamoshkin/blog/internal/telemetry"
	"github.com/SergeyParamoshkin/blog/internal/validate"
	"github.com/SergeyParamoshkin/blog/internal/view"
)

const ServiceName = "blog"

type publisher interface {
	article.Publisher
	Close() error
}

func main() {
	var (
		configPath = flag.String("config", config.GetEnv("BLOG_CONFIG", "config.yaml"), "path to config file")
		routes     = flag.Bool("routes", config.GetEnvBool("BLOG_ROUTES", false), "Generate router documentation")
		addr       = flag.String("addr", "", "application address, overrides config")
		diagAddr   = flag.String("diag_addr", "", "diag address, overrides config")
	)

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *diagAddr != "" {
		cfg.DiagAddr = *diagAddr
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() // flushes buffer, if any
	sugar := log.Sugar().With("service", ServiceName)

	if err := run(cfg, *routes, sugar); err != nil {
		sugar.Errorw("exiting", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, routes bool, sugar *zap.SugaredLogger) error {
	// Route docs need no credentials or database.
	if !routes {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, metricsHandler, err := telemetry.NewProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown(context.Background())

	metrics, err := telemetry.NewMetrics(provider.Meter(ServiceName))
	if err != nil {
		return fmt.Errorf("create instruments: %w", err)
	}

	articles, closeStore, err := openStore(ctx, cfg, routes)
	if err != nil {
		return err
	}
	defer closeStore()

	pub, err := openPublisher(cfg, sugar)
	if err != nil {
		return err
	}
	defer pub.Close()

	views, err := view.New()
	if err != nil {
		return err
	}

	r := server.NewRouter(server.Deps{
		Resource: article.NewResource(articles, views, validate.New(), pub, metrics),
		Auth:     cfg.Auth,
		Logger:   sugar,
		Metrics:  metrics,
	})

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if routes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/blog",
			Intro:       "Routes of the blog articles service.",
		}))

		return nil
	}

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", metricsHandler.ServeHTTP)

	srv := &http.Server{Addr: cfg.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	diag := &http.Server{Addr: cfg.DiagAddr, Handler: diagRouter, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 2)
	for _, s := range []*http.Server{srv, diag} {
		go func(s *http.Server) {
			sugar.Infow("listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(s)
	}

	select {
	case <-ctx.Done():
		sugar.Infow("received shutdown signal")
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = diag.Shutdown(shutdownCtx)
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = serr
	}

	return err
}

func openStore(ctx context.Context, cfg *config.Config, routes bool) (article.Store, func(), error) {
	if routes || cfg.Database.Driver == "memory" {
		return store.NewMemory(), func() {}, nil
	}

	db, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, nil, err
	}

	return store.NewSQL(db), func() { db.Close() }, nil
}

func openPublisher(cfg *config.Config, sugar *zap.SugaredLogger) (publisher, error) {
	if cfg.RabbitMQ.URL == "" {
		return events.Nop{}, nil
	}

	rmq, err := events.NewRabbitMQ(events.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, sugar)
	if err != nil {
		return nil, err
	}

	return rmq, nil
}
