package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/certificates-backend/modules/certificates"
	"github.com/iota-uz/certificates-backend/pkg/application"
	"github.com/iota-uz/certificates-backend/pkg/configuration"
	"github.com/iota-uz/certificates-backend/pkg/eventbus"
	"github.com/iota-uz/certificates-backend/pkg/metrics"
	"github.com/iota-uz/certificates-backend/pkg/middleware"
	"github.com/iota-uz/certificates-backend/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	root := &cobra.Command{
		Use:          "certificates-backend",
		Short:        "Certificate request lifecycle service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	if err := root.Execute(); err != nil {
		configuration.Use().Unload()
		os.Exit(1)
	}
}

func newPool(ctx context.Context) (*pgxpool.Pool, error) {
	conf := configuration.Use()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return pgxpool.New(ctx, conf.Database.Opts)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			pool, err := newPool(cmd.Context())
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			app := application.New(&application.ApplicationOptions{
				Pool:     pool,
				EventBus: eventbus.NewEventPublisher(logger),
				Logger:   logger,
			})
			if err := app.RegisterModules(certificates.NewModule()); err != nil {
				return err
			}
			if conf.Prometheus.Enabled {
				app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
			}

			middlewares := []mux.MiddlewareFunc{
				middleware.WithLogger(logger),
				middleware.WithPool(pool),
			}
			srv := server.NewHTTPServer(app, middlewares, server.Options{
				ReadTimeout:  conf.ReadTimeout,
				WriteTimeout: conf.WriteTimeout,
			})

			logger.Infof("listening on %s", conf.SocketAddress)
			return srv.Start(conf.SocketAddress)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			pool, err := newPool(cmd.Context())
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			schema, err := certificates.SchemaSQL()
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
			if _, err := pool.Exec(cmd.Context(), schema); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}

			logger.Info("schema applied")
			return nil
		},
	}
}
