package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"opalclean-api/res/catalog"
	"opalclean-api/res/notification"
	"opalclean-api/res/session"
	"opalclean-api/res/store"
	"opalclean-api/res/verify"
	"opalclean-api/res/wizard"
)

// Config carries everything the HTTP surface needs. Optional collaborators
// (Verifier, Store) may be nil and degrade gracefully.
type Config struct {
	Logger      *zap.Logger
	Environment string
	FrontendURL string

	Catalog  *catalog.Catalog
	Engine   *wizard.Engine
	Sessions session.Store
	Store    store.Store
	Verifier verify.Verifier
	Notifier notification.NotificationService
}

type server struct {
	*Config
}

// New builds the API router
func New(cfg *Config) http.Handler {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &server{Config: cfg}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.Logger))
	router.Use(securityHeaders())
	router.Use(cors.New(corsConfig(cfg)))

	api := router.Group("/api")
	{
		api.GET("/catalog", s.getCatalog)
		api.POST("/quote/preview", s.previewQuote)

		api.POST("/wizard", s.createWizard)
		api.GET("/wizard/:id", s.getWizard)
		api.POST("/wizard/:id/actions", s.applyWizardAction)
		api.POST("/wizard/:id/submit", s.submitWizard)
		api.GET("/wizard/:id/live", s.liveWizard)

		admin := api.Group("/admin")
		{
			admin.GET("/quotes", s.listQuotes)
			admin.GET("/quotes/:id", s.getQuote)
			admin.PATCH("/quotes/:id/status", s.updateQuoteStatus)
			admin.POST("/quotes/:id/assign", s.assignCleaner)
			admin.GET("/stats", s.getStats)

			admin.GET("/cleaners", s.listCleaners)
			admin.POST("/cleaners", s.createCleaner)
			admin.GET("/cleaners/:id", s.getCleaner)
			admin.PATCH("/cleaners/:id", s.updateCleaner)
			admin.DELETE("/cleaners/:id", s.deleteCleaner)
		}
	}

	return router
}

func corsConfig(cfg *Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// In production, restrict to the frontend domain; in development allow
	// all origins for easier local work.
	if cfg.Environment == "production" && cfg.FrontendURL != "" {
		corsCfg.AllowOrigins = []string{cfg.FrontendURL}
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	return corsCfg
}
