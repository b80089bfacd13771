package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/lbatista/espalier"
	"github.com/lbatista/espalier/internal/httpapi"
	"github.com/lbatista/espalier/internal/logging"
	"github.com/lbatista/espalier/pkg/adapters/file"
	"github.com/lbatista/espalier/pkg/adapters/memory"
	"github.com/lbatista/espalier/pkg/adapters/redis"
	"github.com/lbatista/espalier/pkg/persistence/middleware"
	"github.com/lbatista/espalier/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the questionnaire HTTP server",
	Long:  `Loads and validates the questionnaire definition, then exposes the resolution API over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("definition") {
			cfg.Definition, _ = cmd.Flags().GetString("definition")
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		return runServe(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().StringP("config", "c", "", "Path to a YAML config file")
}

func runServe(cfg Config) error {
	var logger *slog.Logger
	if cfg.LogFormat == "json" {
		logger = logging.NewJSON(slog.LevelInfo)
	} else {
		logger = logging.New(slog.LevelInfo)
	}

	opts := []espalier.Option{espalier.WithLogger(logger)}

	var store ports.SessionStore
	switch cfg.Store {
	case "", "memory":
		store = memory.NewStore()
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()

		store = redis.NewFromClient(client, redis.WithTTL(cfg.SessionTTL))
		if cfg.DistributedLock {
			opts = append(opts, espalier.WithLocker(redis.NewLocker(client, "espalier:lock:")))
		}
	default:
		return fmt.Errorf("unknown store backend: %q", cfg.Store)
	}

	if cfg.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return fmt.Errorf("invalid encryption key: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
		}
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}
	if len(cfg.PIIPatterns) > 0 {
		store = middleware.NewPIIMiddleware(cfg.PIIPatterns)(store)
	}
	opts = append(opts, espalier.WithStore(store))

	ctx := context.Background()
	eng, err := espalier.New(ctx, file.NewLoader(cfg.Definition), opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.NewHandler(eng, httpapi.WithLogger(logger)),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", srv.Addr,
			"definition", cfg.Definition,
			"questionnaire", eng.Questionnaire().QuestionnaireID,
			"store", cfg.Store,
		)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("starting shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}
		}
		logger.Info("server stopped")
	}
	return nil
}
