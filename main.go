package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"mentesana-server/confs"
	"mentesana-server/db"
	"mentesana-server/logger"
	"mentesana-server/server"
)

func main() {
	root := &cli.Command{
		Name:  "mentesana-server",
		Usage: "Mente Sana wellbeing API",
		Commands: []*cli.Command{
			serveCommand(),
			initDBCommand(),
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return runServer(ctx, "")
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx, os.Args); err != nil {
		logger.Fatal("exit", "err", err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port, overrides PORT"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("port"))
		},
	}
}

func initDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "init-db",
		Usage: "Create tables and seed the catalogs, then exit",
		Action: func(ctx context.Context, _ *cli.Command) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			database, err := db.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			logger.Info("database ready", "engine", database.Engine())
			return nil
		},
	}
}

// setup loads the configuration and initializes the global logger.
func setup() (*confs.Config, error) {
	cfg, err := confs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.LogJSON}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

func runServer(ctx context.Context, port string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}

	database, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warn("close database", "err", err)
		}
		logger.Info("database closed")
	}()

	return server.NewServer(cfg, database).Run(ctx)
}
