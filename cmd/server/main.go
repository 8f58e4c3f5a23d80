package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/youruser/deckbuilder/internal/api"
	"github.com/youruser/deckbuilder/internal/cards"
	"github.com/youruser/deckbuilder/internal/session"
	"github.com/youruser/deckbuilder/internal/storage"
	"github.com/youruser/deckbuilder/internal/storage/sqlite"
	"golang.org/x/sync/errgroup"
)

// Build variables - set by ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/deckbuilder/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("deckbuilder %s (%s)\n", version, commit)
		return
	}

	// .env is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	configureLogger(os.Stderr, cfg)

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func configureLogger(w io.Writer, cfg appConfig) {
	level, _ := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

// openKV picks the snapshot backend. The returned close func is never nil.
func openKV(ctx context.Context, cfg appConfig) (storage.KV, func() error, error) {
	if cfg.Storage == "memory" {
		return storage.NewMemory(), func() error { return nil }, nil
	}
	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return st, st.Close, nil
}

func run(cfg appConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ord, err := cfg.ordering()
	if err != nil {
		return err
	}

	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		// The deck still works in memory; it just will not survive a restart.
		slog.Error("opening deck storage failed, deck will not be saved", "error", err)
		kv, closeKV = storage.NewMemory(), func() error { return nil }
	}
	defer closeKV()
	snaps := storage.NewSnapshots(kv)
	writer := storage.NewWriter(snaps)
	opts := session.Options{Ordering: ord, DefaultName: cfg.DefaultName, Persister: writer}

	var sess *session.Session
	catalog, err := cards.Load(ctx, cfg.Catalog, cfg.CatalogTimeout, ord)
	if err != nil {
		slog.Error("catalog unavailable", "source", cfg.Catalog, "error", err)
		sess = session.Unavailable(err, opts)
	} else {
		slog.Info("catalog loaded", "source", cfg.Catalog, "cards", catalog.Len())
		sess = session.New(catalog, opts)
		if err := sess.Restore(ctx, snaps); err != nil {
			slog.Warn("restoring saved deck failed, starting empty", "error", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	srv := api.NewServer(cfg.Addr, sess, cfg.QRSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return writer.Run(gctx) })
	g.Go(func() error {
		slog.Info("listening", "addr", cfg.Addr, "storage", cfg.Storage)
		return srv.ListenAndServe(gctx)
	})
	return g.Wait()
}
