package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/tune-fetch-go/api"
	"github.com/yourusername/tune-fetch-go/internal/app"
	"github.com/yourusername/tune-fetch-go/internal/infrastructure"
	"github.com/yourusername/tune-fetch-go/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting tune-fetch server",
		zap.String("version", api.Version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.Bool("remote_song", config.Remote.SongURL != "" && config.Remote.APIKey != ""),
		zap.Bool("remote_video", config.Remote.VideoURL != "" && config.Remote.APIKey != ""))

	dirs := []string{
		config.Downloads.Dir,
		config.Downloads.CacheDir,
		config.Downloads.ThumbDir(),
		config.Delivery.ExportDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal("Failed to create directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	repo, err := infrastructure.NewSQLiteAcquisitionRepository(config.Downloads.HistoryDBPath)
	if err != nil {
		log.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	cache := infrastructure.NewMediaCache(config.Downloads.Dir)
	remote := infrastructure.NewRemoteClient(&config.Remote, cache, log)
	extractor := infrastructure.NewYtdlpExtractor(&config.Extractor, config.Downloads.Dir, log)
	counters := app.NewCounters()

	acquire := app.NewAcquireService(cache, remote, extractor, repo, counters, log)
	resolver := infrastructure.NewYouTubeSearch()
	lyrics := infrastructure.NewGeniusLyrics(config.Lyrics.APIToken)
	requests := app.NewRequestCache(config.Delivery.RequestTimeout)

	channel := infrastructure.NewLocalDeliveryChannel(config.Delivery.ExportDir, log)
	thumbs := infrastructure.NewHTTPThumbnailFetcher()
	deliver := app.NewDeliveryCoordinator(acquire, requests, channel, thumbs,
		config.Downloads.ThumbDir(), config.Delivery.Performer, log)

	router := api.SetupRouter(acquire, deliver, resolver, extractor, lyrics, requests, repo, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
