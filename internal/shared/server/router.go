package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"krishi-backend/internal/disease"
	"krishi-backend/internal/shared/config"
	"krishi-backend/internal/shared/metrics"
	"krishi-backend/internal/shared/server/middleware"
	"krishi-backend/internal/shared/server/respond"
	"krishi-backend/internal/soiltest"
	"krishi-backend/internal/translate"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	SoilTestHandler  *soiltest.Handler
	DiseaseHandler   *disease.Handler
	TranslateHandler *translate.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(uploadRateLimit()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.SoilTestHandler != nil {
		deps.SoilTestHandler.RegisterRoutes(api)
	}
	if deps.DiseaseHandler != nil {
		deps.DiseaseHandler.RegisterRoutes(api)
	}
	if deps.TranslateHandler != nil {
		deps.TranslateHandler.RegisterRoutes(api)
	}

	return r
}

// uploadRateLimit throttles the two document-upload endpoints per client IP.
// Everything else passes through unlimited.
func uploadRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		Rules: map[string]middleware.RateLimitRule{
			"UPLOAD": {Rate: 1, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return "DEFAULT"
			}
			switch c.FullPath() {
			case "/api/v1/soil-tests", "/api/v1/crops/detect-disease":
				return "UPLOAD"
			default:
				return "DEFAULT"
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
