package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "fulfillment",
		Usage: "order fulfillment and courier dispatch service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API, background jobs and event dispatcher",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema",
				Action: migrate,
			},
			{
				Name:  "token",
				Usage: "issue a bearer token for local testing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Aliases: []string{"sub"}, Required: true, Usage: "actor id (uuid)"},
					&cli.StringFlag{Name: "role", Required: true, Usage: "customer, vendor or courier"},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
				},
				Action: token,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("fulfillment exited")
	}
}

func setup() (cmd.Config, *logrus.Logger, error) {
	config, err := cmd.LoadConfig()
	if err != nil {
		return cmd.Config{}, nil, err
	}
	logger, err := config.NewLogger()
	if err != nil {
		return cmd.Config{}, nil, err
	}
	return config, logger, nil
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, logger, err := setup()
	if err != nil {
		return err
	}

	infra, closeInfra, err := cmd.OpenInfrastructure(ctx, config)
	defer func() {
		if err := closeInfra(); err != nil {
			logger.WithError(err).Warn("failed to close connections")
		}
	}()
	if err != nil {
		return err
	}

	root, err := cmd.NewCompositionRoot(config, infra, logger)
	if err != nil {
		return err
	}
	server, err := root.CreateHTTPServer()
	if err != nil {
		return err
	}
	manager := root.CreateJobManager()
	if err = manager.StartAll(); err != nil {
		return err
	}

	// The dispatcher outlives the server so events committed by in-flight
	// requests are still published.
	dispatchCtx, stopDispatch := context.WithCancel(context.WithoutCancel(ctx))
	defer stopDispatch()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return root.Dispatcher().Run(dispatchCtx)
	})
	g.Go(func() error {
		return server.Start(config.HTTPAddress())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		manager.StopAll()
		stopDispatch()
		return err
	})
	return g.Wait()
}

func migrate(_ *cli.Context) error {
	config, logger, err := setup()
	if err != nil {
		return err
	}

	db, err := cmd.OpenDatabase(config)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.WithField("database", config.DBName).Info("schema is up to date")
	return nil
}

func token(c *cli.Context) error {
	config, _, err := setup()
	if err != nil {
		return err
	}

	auth, err := http.NewAuthenticator(config.JWTSecret, config.JWTIssuer)
	if err != nil {
		return err
	}
	subject, err := kernel.UUIDFromString(c.String("subject"))
	if err != nil {
		return err
	}
	signed, err := auth.Issue(subject, http.Role(c.String("role")), c.Duration("ttl"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, signed)
	return err
}
