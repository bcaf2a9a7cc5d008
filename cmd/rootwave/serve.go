package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "github.com/rootwave/site/docs"
	"github.com/rootwave/site/internal/api"
	"github.com/rootwave/site/internal/config"
	"github.com/rootwave/site/internal/content"
	"github.com/rootwave/site/internal/fallback"
	"github.com/rootwave/site/internal/handler"
	"github.com/rootwave/site/internal/lead"
	"github.com/rootwave/site/internal/meta"
	"github.com/rootwave/site/internal/metrics"
	"github.com/rootwave/site/internal/middleware"
	"github.com/rootwave/site/internal/session"
	"github.com/rootwave/site/internal/static"
	"github.com/rootwave/site/internal/template"
	"github.com/rootwave/site/internal/webhook"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Value:   config.DefaultPort,
			Usage:   "HTTP server port",
			EnvVars: []string{"PORT"},
		},
		&cli.StringFlag{
			Name:    "fallback-dir",
			Usage:   "Directory keeping a server-side copy of every CSV backup",
			EnvVars: []string{"FALLBACK_DIR"},
		},
		&cli.StringFlag{
			Name:    "content",
			Usage:   "TOML content file replacing the built-in catalog",
			EnvVars: []string{"CONTENT_FILE"},
		},
		&cli.IntFlag{
			Name:    "rate-limit",
			Value:   config.DefaultRateLimit,
			Usage:   "Form posts per minute per IP address",
			EnvVars: []string{"RATE_LIMIT"},
		},
		&cli.DurationFlag{
			Name:    "session-ttl",
			Value:   config.DefaultSessionTTL,
			Usage:   "How long idle visitors keep their form state",
			EnvVars: []string{"SESSION_TTL"},
		},
		&cli.BoolFlag{
			Name:    "trust-proxy",
			Usage:   "Read client IPs from X-Forwarded-For (only behind a reverse proxy)",
			EnvVars: []string{"TRUST_PROXY"},
		},
	}, settingsFlags()...)

	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve the landing page, the sample form and the lead API",
		Flags:  flags,
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	site, err := content.LoadFile(cfg.ContentFile)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	tmpl, err := template.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	leadMetrics := metrics.New(reg)

	deliverer, err := newDeliverer(cfg, leadMetrics)
	if err != nil {
		return err
	}

	var backup lead.FallbackWriter
	if cfg.FallbackDir != "" {
		dir, err := fallback.NewDir(cfg.FallbackDir)
		if err != nil {
			return fmt.Errorf("invalid fallback directory: %w", err)
		}
		backup = dir
	}

	settings := cfg.LeadSettings()
	variant := cfg.FormVariant()

	sessions, err := session.NewStore(cfg.SessionTTL, func(s *session.Session) (*lead.Controller, error) {
		writers := fallback.Chain{s}
		if backup != nil {
			writers = append(writers, backup)
		}
		return lead.NewController(variant, settings, lead.Deps{
			Dispatcher: s,
			Deliverer:  deliverer,
			Fallback:   writers,
			Notifier:   s,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}
	defer sessions.Close()

	h, err := handler.New(sessions, site, tmpl, handler.Options{
		Meta:     meta.ForBrand(cfg.Brand, cfg.SiteURL),
		Settings: settings,
		Metrics:  leadMetrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	apiHandler, err := api.New(site, api.Options{
		Settings:  settings,
		Deliverer: deliverer,
		Backup:    backup,
		Metrics:   leadMetrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create API handler: %w", err)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, cfg.TrustProxy)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}
	defer rateLimiter.Close()

	mux := http.NewServeMux()
	staticHandler := static.Handler()
	for _, path := range static.Paths {
		mux.Handle("GET "+path, staticHandler)
	}
	mux.Handle("GET /metrics", leadMetrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	h.RegisterRoutes(mux)
	apiHandler.RegisterRoutes(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.CacheControl(rateLimiter.Middleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WebhookTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server",
			"server_addr", "http://localhost:"+cfg.Port,
			"variant", variant.Name,
			"webhook", cfg.WebhookURL != "",
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newDeliverer returns the webhook client, or nil when no webhook is
// configured.
func newDeliverer(cfg config.Config, m *metrics.LeadMetrics) (lead.Deliverer, error) {
	if cfg.WebhookURL == "" {
		slog.Warn("no webhook configured, every lead goes to the CSV backup")
		return nil, nil
	}
	client, err := webhook.New(cfg.WebhookURL, cfg.WebhookTimeout, m)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook: %w", err)
	}
	return client, nil
}
