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

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"

	"github.com/synergysphere/synergyboard/internal/activity"
	"github.com/synergysphere/synergyboard/internal/config"
	"github.com/synergysphere/synergyboard/internal/handler"
	"github.com/synergysphere/synergyboard/internal/logger"
	"github.com/synergysphere/synergyboard/internal/service"
	"github.com/synergysphere/synergyboard/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "synergyboard",
		Usage: "Project and task board API for the dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "seed",
						Aliases: []string{"s"},
						Usage:   "Path to a YAML board fixture (embedded default when empty)",
						EnvVars: []string{"SEED_FILE"},
					},
					&cli.Float64Flag{
						Name:    "fault-rate",
						Value:   config.DefaultFaultRate,
						Usage:   "Fraction of simulated storage operations that fail (0 disables)",
						EnvVars: []string{"FAULT_RATE"},
					},
					&cli.DurationFlag{
						Name:    "latency",
						Value:   config.DefaultLatency,
						Usage:   "Simulated storage latency per operation",
						EnvVars: []string{"FAULT_LATENCY"},
					},
					&cli.Int64Flag{
						Name:    "fault-seed",
						Value:   1,
						Usage:   "Random seed for the fault injector",
						EnvVars: []string{"FAULT_SEED"},
					},
				},
				Action: runServe,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	var faults store.FaultInjector = store.NopInjector{}
	if rate, latency := c.Float64("fault-rate"), c.Duration("latency"); rate > 0 || latency > 0 {
		faults = store.NewRandomInjector(rate, latency, c.Int64("fault-seed"))
	}

	st := store.New(faults)
	recorder := activity.NewRecorder()

	seed, err := store.LoadSeedFile(c.String("seed"))
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	if err := st.ApplySeed(seed, recorder, time.Now()); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	slog.Info("board seeded",
		"projects", len(seed.Projects),
		"members", len(seed.Members),
		"tasks", len(seed.Tasks),
	)

	taskService := service.NewTaskService(st, recorder)
	h := handler.New(st, taskService)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// The dashboard runs in a browser on another origin.
	corsHandler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           corsHandler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
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

	shutdownCtx, cancel := context.WithTimeout(c.Context, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
