package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/przecze/rooms-of-roaming/internal/cache"
	"github.com/przecze/rooms-of-roaming/internal/config"
	"github.com/przecze/rooms-of-roaming/internal/dungeon"
	"github.com/przecze/rooms-of-roaming/internal/httpapi"
	"github.com/przecze/rooms-of-roaming/internal/httpapi/wsdebug"
	"github.com/przecze/rooms-of-roaming/internal/tabletstore"
)

func main() {
	var (
		addr       = flag.String("addr", "", "http listen address (overrides tuning file)")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (defaults baked in if empty)")
		dbPath     = flag.String("tablets_db", "", "path to the tablet store's sqlite database (overrides tuning file)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg := config.Default()
	if tp := *tuningPath; tp != "" {
		loaded, err := config.Load(tp)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.HTTP.ListenAddr = *addr
	}
	if *dbPath != "" {
		cfg.Tablets.DatabasePath = *dbPath
	}

	dungeonCfg := cfg.DungeonConfig()
	if err := dungeonCfg.Validate(); err != nil {
		logger.Fatalf("invalid dungeon configuration: %v", err)
	}

	store, err := tabletstore.Open(cfg.Tablets.DatabasePath)
	if err != nil {
		logger.Fatalf("open tablet store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.CheckVersion(ctx, dungeonCfg.GenerationHash()); err != nil {
		cancel()
		logger.Fatalf("tablet store version check: %v", err)
	}
	cancel()

	generator := dungeon.NewGenerator(dungeonCfg)
	chunkCache := cache.NewChunkCache(cfg.Cache.Capacity)
	facade := dungeon.NewFacade(generator, chunkCache)

	var debugHub *wsdebug.Hub
	if cfg.HTTP.EnableDebugWS {
		debugHub = wsdebug.NewHub(logger)
	}

	api := httpapi.NewServer(facade, logger, cfg.HTTP.MaxCoordinate, debugHub)
	mux := http.NewServeMux()
	api.Routes(mux)

	srv := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCtx, stop := signalContext()
	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	defer stop()

	logger.Printf("listening on %s (chunk_size=%d cache_capacity=%d)",
		cfg.HTTP.ListenAddr, dungeonCfg.ChunkSize, cfg.Cache.Capacity)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
