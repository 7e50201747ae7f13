package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rmedina/expovote/cliparse"
	"github.com/rmedina/expovote/localcache"
	"github.com/rmedina/expovote/middleware"
	"github.com/rmedina/expovote/remote"
	"github.com/rmedina/expovote/remote/polling"
	"github.com/rmedina/expovote/remote/push"
	"github.com/rmedina/expovote/router"
	"github.com/rmedina/expovote/submit"
	"github.com/rmedina/expovote/syncer"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the durable local cache
	cache, err := localcache.Open(cfg.CachePath)
	if err != nil {
		slog.Error("local cache open failed", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	// Build the configured remote connector. A missing or unreachable
	// endpoint degrades the connector to disconnected; it never stops the
	// local side from serving.
	var connector remote.Connector
	switch cfg.Backend {
	case cliparse.BackendPush:
		if cfg.DatabaseURL == "" {
			slog.Warn("no database URL configured, running disconnected")
		}
		pushConn := push.New(cfg.DatabaseURL)
		defer pushConn.Close()
		connector = pushConn
	default:
		if cfg.SheetURL == "" {
			slog.Warn("no sheet URL configured, running disconnected")
		}
		connector = polling.New(cfg.SheetURL, time.Duration(cfg.PollInterval)*time.Second)
	}
	slog.Info("remote backend ready", "backend", connector.Name())

	// Wire the sync core
	sync := syncer.New(cache, connector)
	pipeline := submit.New(cache, connector)

	// Create router
	mux := router.NewRouter(sync, pipeline, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "backend", connector.Name())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
