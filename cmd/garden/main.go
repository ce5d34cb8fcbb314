package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/iremince/garden-project/internal/cli"
	"github.com/iremince/garden-project/internal/config"
	"github.com/iremince/garden-project/internal/db"
	"github.com/iremince/garden-project/internal/garden"
	"github.com/iremince/garden-project/internal/store"
	"github.com/iremince/garden-project/internal/unlock"
	"github.com/iremince/garden-project/internal/weather"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath reads --config ahead of cobra, which only runs once the App
// built from that config exists.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("garden", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String(cli.ConfigFlag, "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var backend store.Backend
	switch cfg.Storage.Backend {
	case config.BackendFile:
		backend = store.NewFileBackend(cfg.Storage.Dir)
	default:
		database, err := db.OpenDB(cfg.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		backend = store.NewSQLiteBackend(db.NewSQLiteUnitOfWork(database))
	}
	st := store.New(backend, store.WithKey(cfg.Storage.Key), store.WithLogger(logger))

	geo, err := cfg.Layout()
	if err != nil {
		return fmt.Errorf("building layout: %w", err)
	}

	opts := []garden.Option{garden.WithPolicy(unlock.NewPolicy(cfg.Unlock.ThresholdMinutes))}
	if cfg.Log.Calls {
		opts = append(opts, garden.WithObserver(garden.NewLogUseCaseObserver(os.Stderr)))
	}
	core := garden.Open(ctx, st, geo, opts...)

	app := &cli.App{
		Garden:        core,
		IsInteractive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	if cfg.Weather.Enabled {
		sky := weather.New(weather.WithLogger(logger))
		sky.Start(ctx)
		app.Weather = sky
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
