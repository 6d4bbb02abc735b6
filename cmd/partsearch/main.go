// Command partsearch runs the parts search API server.
//
// Configuration is loaded from cmd/partsearch/config.yml (overridable with
// -config) plus PARTSEARCH_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/partsearch/partsearch/auth"
	"github.com/partsearch/partsearch/config"
	"github.com/partsearch/partsearch/events"
	"github.com/partsearch/partsearch/logger"
	"github.com/partsearch/partsearch/parts"
	"github.com/partsearch/partsearch/server"
	"github.com/partsearch/partsearch/server/endpoint"
	"github.com/partsearch/partsearch/server/middleware"
	"github.com/partsearch/partsearch/util"
	"github.com/partsearch/partsearch/version"
)

const serviceName = "partsearch"

// AppConfig is the full configuration for the partsearch binary.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server server.Config `yaml:"server" mapstructure:"server"`
	Auth   auth.Config   `yaml:"auth" mapstructure:"auth"`

	RateLimit middleware.RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`

	// Permissions maps roles to permission patterns. Only enforced when auth
	// is enabled.
	Permissions middleware.RolePermissions `yaml:"permissions" mapstructure:"permissions"`
}

// ApplyDefaults fills in unset fields across all sections.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	if c.Permissions == nil {
		c.Permissions = middleware.RolePermissions{
			"admin":  {"*:*"},
			"editor": {"parts:read", "parts:write"},
			"viewer": {"parts:read"},
		}
	}
}

// Validate checks all sections.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	// Auth is optional: an empty secret disables the auth middleware.
	if c.Auth.Secret != "" {
		if err := c.Auth.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		return
	}

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "partsearch: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	var cfg AppConfig
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if err := config.Load(serviceName, &cfg, opts...); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.WithComponent("main")
	log.Info("Starting partsearch", logger.Fields(
		"version", util.Coalesce(cfg.Version, version.Short()),
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := parts.NewStore()
	hub := events.NewHub()
	defer hub.Close()
	service := parts.NewService(store, parts.WithEvents(hub))
	handler := parts.NewHandler(service)

	srv := server.New(cfg.Server, logger.GetGlobalLogger())
	srv.ApplyDefaults(cfg.Name, partsHealthChecker(store))

	engine := srv.GinEngine()
	if cfg.RateLimit.Rate > 0 {
		engine.Use(middleware.RateLimit(cfg.RateLimit))
	}
	if cfg.Auth.Secret != "" {
		tokens, err := auth.NewService(cfg.Auth)
		if err != nil {
			return fmt.Errorf("auth service: %w", err)
		}
		engine.Use(middleware.Auth(middleware.AuthConfig{
			TokenValidator: tokens.ValidateMap,
			SkipPaths:      []string{"/health", "/alive", "/ready", "/version"},
		}))
		engine.Use(middleware.RequirePermission(cfg.Permissions, middleware.PartsPermission))
		log.Info("Token authentication enabled", logger.Fields(
			"issuer", cfg.Auth.Issuer,
			"secret", util.MaskSecret(cfg.Auth.Secret, 4),
		))
	}
	engine.GET("/parts/events", events.Stream(hub))
	handler.Register(engine)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	return srv.Stop(context.Background())
}

// partsHealthChecker reports the state of the in-memory part store.
func partsHealthChecker(store *parts.Store) endpoint.HealthChecker {
	return func(ctx context.Context) []endpoint.Check {
		return []endpoint.Check{
			{
				Name:    "parts-store",
				Status:  endpoint.StatusHealthy,
				Message: fmt.Sprintf("%d parts", store.Count()),
			},
		}
	}
}
