package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/BinteRazi/Personal-Library-manager/internal/library"
	"github.com/BinteRazi/Personal-Library-manager/internal/menu"
	"github.com/BinteRazi/Personal-Library-manager/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	err := godotenv.Load()
	if os.IsNotExist(err) {
		log.Printf("no .env file found, skipping")
	} else if err != nil {
		log.Fatalf("failed loading .env file: %s", err)
	}

	err = newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "library"
	app.Usage = "Personal book collection manager."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "data-file",
			Usage:   "file the collection is stored in (default: " + library.DefaultPath + ", or " + library.DefaultSQLitePath + " for sqlite)",
			EnvVars: []string{"LIBRARY_DATA_FILE"},
		},
		&cli.StringFlag{
			Name:    "storage",
			Value:   "json",
			Usage:   "storage format, json or sqlite",
			EnvVars: []string{"LIBRARY_STORAGE"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "enable debug logging",
			EnvVars: []string{"LIBRARY_VERBOSE"},
		},
	}
	app.Before = func(ctx *cli.Context) error {
		if ctx.Bool("verbose") {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:   "menu",
			Usage:  "manage the collection through the interactive text menu",
			Action: runMenu,
		},
		{
			Name:  "serve",
			Usage: "serve the form-based web interface",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "port",
					Value:   8080,
					Usage:   "port to run server on",
					EnvVars: []string{"LIBRARY_PORT"},
				},
			},
			Action: runServe,
		},
	}
	app.DefaultCommand = "menu"
	return app
}

func openStore(ctx *cli.Context) (library.Store, func(), error) {
	store, err := library.OpenStore(ctx.String("storage"), ctx.String("data-file"))
	if err != nil {
		return nil, nil, err
	}

	path := ctx.String("data-file")
	if path == "" {
		path = library.DefaultPathFor(ctx.String("storage"))
	}
	slog.Debug("opened library", "storage", ctx.String("storage"), "path", path)

	closeStore := func() {}
	if closer, ok := store.(io.Closer); ok {
		closeStore = func() {
			if err := closer.Close(); err != nil {
				slog.Error("closing library", "error", err)
			}
		}
	}
	return store, closeStore, nil
}

func runMenu(ctx *cli.Context) error {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	return menu.New(store, os.Stdin, os.Stdout).Run(ctx.Context)
}

func runServe(ctx *cli.Context) error {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	sigCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	server := &http.Server{
		Addr:    ":" + strconv.Itoa(ctx.Int("port")),
		Handler: web.NewServer(sigCtx, store),
	}
	return serve(sigCtx, server)
}

// serve runs server until ctx is done, then waits up to shutdownTimeout for
// in-flight requests, and their saves, to finish.
func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
