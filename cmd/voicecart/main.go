package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/config"
	dbRedis "github.com/kailas-cloud/voicecart/internal/db/redis"
	logpkg "github.com/kailas-cloud/voicecart/internal/logger"
	"github.com/kailas-cloud/voicecart/internal/version"
)

var envFlag string

var rootCmd = &cobra.Command{
	Use:           "voicecart",
	Short:         "Voice grocery assistant backend: hybrid product search, orders and realtime sessions",
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// A missing .env is fine: production injects the environment directly.
		_ = godotenv.Load()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "",
		`config environment, selects config/<env>.yaml (default: $ENV or "local")`)
	rootCmd.AddCommand(serveCmd, seedCmd, cleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "voicecart:", err)
		os.Exit(1)
	}
}

// app bundles what every sub-command needs: config, logger and a ready store.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	store  *dbRedis.Store
}

func newApp() (*app, error) {
	env := envFlag
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:        cfg.Database.Addrs,
		Username:     cfg.Database.Username,
		Password:     cfg.Database.Password,
		DB:           cfg.Database.DB,
		ClientName:   "voicecart-" + env,
		DialTimeout:  time.Duration(cfg.Database.DialTimeoutMS) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Database.WriteTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("create store: %w", err)
	}

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(logpkg.ContextWithLogger(context.Background(), logger), readiness); err != nil {
		store.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))

	return &app{env: env, cfg: cfg, logger: logger, store: store}, nil
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

// signalContext is cancelled on SIGINT or SIGTERM and carries the app logger.
func (a *app) signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return logpkg.ContextWithLogger(ctx, a.logger), cancel
}
