package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/tune-fetch-go/api/handlers"
	"github.com/yourusername/tune-fetch-go/api/middleware"
	"github.com/yourusername/tune-fetch-go/internal/app"
	"github.com/yourusername/tune-fetch-go/internal/domain"
)

// Version reported by the health endpoint
const Version = "1.0.0"

// SetupRouter sets up the HTTP admin surface
func SetupRouter(
	acquire *app.AcquireService,
	deliver *app.DeliveryCoordinator,
	resolver domain.SearchResolver,
	playlists domain.PlaylistExpander,
	lyrics domain.LyricsProvider,
	requests *app.RequestCache,
	repo domain.AcquisitionRepository,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(Version)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		acquireHandler := handlers.NewAcquireHandler(acquire, repo, log)
		v1.POST("/acquire", acquireHandler.Acquire)
		v1.GET("/stats", acquireHandler.Stats)
		v1.GET("/acquisitions", acquireHandler.ListAcquisitions)

		searchHandler := handlers.NewSearchHandler(resolver, playlists, requests, log)
		v1.GET("/search", searchHandler.Search)
		v1.GET("/playlist", searchHandler.Playlist)

		deliverHandler := handlers.NewDeliverHandler(deliver, log)
		v1.POST("/deliver", deliverHandler.Deliver)

		lyricsHandler := handlers.NewLyricsHandler(lyrics, log)
		v1.GET("/lyrics", lyricsHandler.Lyrics)
	}

	return router
}
