package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"podcast-archive/pkg/aiextract"
	"podcast-archive/pkg/api"
	"podcast-archive/pkg/cache"
	"podcast-archive/pkg/config"
	"podcast-archive/pkg/content"
	"podcast-archive/pkg/db"
	"podcast-archive/pkg/episodes"
	"podcast-archive/pkg/importer"
	"podcast-archive/pkg/logging"
	"podcast-archive/pkg/merge"
)

const version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Configure(cfg.Log.File)

	ctx := context.Background()

	dbClient := db.NewClient(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err := dbClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close(ctx)

	var fallback *db.FallbackSource
	if cfg.Mongo.FallbackPath != "" {
		fallback = db.NewFallbackSource(cfg.Mongo.FallbackPath)
	}

	episodeCache := cache.New()
	svc := episodes.New(dbClient, episodeCache, fallback)

	var ai importer.MetadataClient
	if cfg.Extraction.Endpoint != "" {
		ai = aiextract.NewClient(cfg.Extraction.Endpoint, cfg.Extraction.APIKey, cfg.Extraction.Model)
	} else {
		log.Printf("No extraction endpoint configured, imports run with heuristics only")
	}

	pipeline := importer.New(dbClient, content.NewFileExtractor(nil), ai, episodeCache)
	pipeline.SetDelay(cfg.Import.InterFileDelay)

	mux := api.NewRouter(api.Handlers{
		Episodes: api.NewEpisodesHandler(svc),
		Merge:    api.NewMergeHandler(merge.NewEngine(dbClient, episodeCache)),
		Import:   api.NewImportHandler(pipeline),
		Health:   api.NewHealthHandler(dbClient, version),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Archive server listening on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
