// Command rootwave serves the RootWave landing page and its free sample
// request form.
//
//	@title			RootWave Sample Request API
//	@version		1.0
//	@description	Lead submission API for free rice straw samples.
//	@BasePath		/
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/rootwave/site/internal/config"
	"github.com/rootwave/site/internal/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "rootwave",
		Usage:  "RootWave rice straw site and free sample request pipeline",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML settings file; flags override its values",
				EnvVars: []string{"ROOTWAVE_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetupWriter(c.App.ErrWriter, logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			submitCommand(),
		},
		DefaultCommand: "serve",
	}
}

// settingsFlags returns the flags shared by every command that runs the lead
// pipeline.
func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "brand",
			Value:   config.DefaultBrand,
			Usage:   "Brand name used in messages and backup file names",
			EnvVars: []string{"BRAND"},
		},
		&cli.StringFlag{
			Name:    "site-url",
			Value:   config.DefaultSiteURL,
			Usage:   "Site identifier recorded as the lead source",
			EnvVars: []string{"SITE_URL"},
		},
		&cli.StringFlag{
			Name:    "whatsapp-number",
			Value:   config.DefaultWhatsAppNumber,
			Usage:   "WhatsApp number receiving sample requests",
			EnvVars: []string{"WHATSAPP_NUMBER"},
		},
		&cli.StringFlag{
			Name:    "variant",
			Value:   config.DefaultVariant,
			Usage:   "Form variant (classic, campaign)",
			EnvVars: []string{"FORM_VARIANT"},
		},
		&cli.StringFlag{
			Name:    "campaign",
			Value:   config.Default().Campaign,
			Usage:   "Campaign label stamped on every record",
			EnvVars: []string{"CAMPAIGN"},
		},
		&cli.StringFlag{
			Name:    "webhook-url",
			Aliases: []string{"w"},
			Usage:   "Lead collection webhook; empty sends every lead to the CSV backup",
			EnvVars: []string{"WEBHOOK_URL"},
		},
		&cli.DurationFlag{
			Name:    "webhook-timeout",
			Value:   config.DefaultWebhookTimeout,
			Usage:   "Timeout of the single webhook attempt",
			EnvVars: []string{"WEBHOOK_TIMEOUT"},
		},
	}
}

// loadConfig layers flags set on the command line or in the environment over
// the settings file.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	stringFlags := map[string]*string{
		"port":            &cfg.Port,
		"brand":           &cfg.Brand,
		"site-url":        &cfg.SiteURL,
		"whatsapp-number": &cfg.WhatsAppNumber,
		"variant":         &cfg.Variant,
		"campaign":        &cfg.Campaign,
		"webhook-url":     &cfg.WebhookURL,
		"fallback-dir":    &cfg.FallbackDir,
		"content":         &cfg.ContentFile,
	}
	for name, dst := range stringFlags {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	if c.IsSet("webhook-timeout") {
		cfg.WebhookTimeout = c.Duration("webhook-timeout")
	}
	if c.IsSet("rate-limit") {
		cfg.RateLimit = c.Int("rate-limit")
	}
	if c.IsSet("session-ttl") {
		cfg.SessionTTL = c.Duration("session-ttl")
	}
	if c.IsSet("trust-proxy") {
		cfg.TrustProxy = c.Bool("trust-proxy")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
