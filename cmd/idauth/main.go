package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/idauth/internal/auth"
	"github.com/dropDatabas3/idauth/internal/config"
	"github.com/dropDatabas3/idauth/internal/email"
	httpx "github.com/dropDatabas3/idauth/internal/http"
	"github.com/dropDatabas3/idauth/internal/infra/cachefactory"
	"github.com/dropDatabas3/idauth/internal/jwt"
	"github.com/dropDatabas3/idauth/internal/metrics"
	"github.com/dropDatabas3/idauth/internal/observability/logger"
	"github.com/dropDatabas3/idauth/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:           "idauth",
		Short:         "idauth es el backend de autenticación de usuarios de IDA",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var cfgPath string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgPath)
		},
	}
	serve.Flags().StringVarP(&cfgPath, "config", "c", envOr("IDAUTH_CONFIG", "config.yaml"), "ruta al config YAML")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func runServe(cfgPath string) error {
	// .env es opcional; las env reales pisan el YAML igual.
	_ = godotenv.Load()

	if _, err := os.Stat(cfgPath); err != nil {
		// Sin YAML se puede arrancar solo con env vars.
		cfgPath = ""
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "idauth"})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("serve")

	if err := metrics.Register(nil); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store
	scfg := store.Config{Driver: cfg.Storage.Driver}
	scfg.Mongo.URI = cfg.Storage.Mongo.URI
	scfg.Mongo.Database = cfg.Storage.Mongo.Database
	scfg.Postgres.DSN = cfg.Storage.Postgres.DSN
	scfg.Postgres.MaxConns = cfg.Storage.Postgres.MaxConns
	scfg.Postgres.ConnMaxLifetime = cfg.Storage.Postgres.ConnMaxLifetime
	scfg.Postgres.Migrate = cfg.Flags.Migrate

	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	repo, err := store.Open(openCtx, scfg)
	cancel()
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() { _ = repo.Close(context.Background()) }()
	log.Info("store ready", logger.String("driver", cfg.Storage.Driver))

	// Cache
	ccfg := cachefactory.Config{Kind: cfg.Cache.Kind}
	ccfg.Redis.Addr = cfg.Cache.Redis.Addr
	ccfg.Redis.DB = cfg.Cache.Redis.DB
	ccfg.Redis.Prefix = cfg.Cache.Redis.Prefix
	ccfg.Memory.DefaultTTL = cfg.Cache.Memory.DefaultTTL
	ch, err := cachefactory.Open(ccfg)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	// Mailer
	var mailer email.Sender
	if cfg.SMTP.Host != "" {
		s := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		if cfg.SMTP.TLS != "" {
			s.TLSMode = cfg.SMTP.TLS
		}
		s.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		mailer = s
	} else {
		log.Warn("smtp no configurado, usando noop sender")
		mailer = email.NoopSender{}
	}

	svc := auth.NewService(repo, jwt.NewCodec(cfg.JWT.Secret), mailer, ch)

	handler := httpx.NewRouter(httpx.RouterDeps{
		Svc:                svc,
		Store:              repo,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		ExposeMetrics:      cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
