package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnanything-backend/internal/attempts"
	googleauth "learnanything-backend/internal/auth"
	"learnanything-backend/internal/documents"
	"learnanything-backend/internal/processing"
	"learnanything-backend/internal/profiles"
	"learnanything-backend/internal/quizzes"
	"learnanything-backend/internal/shared/config"
	"learnanything-backend/internal/shared/metrics"
	"learnanything-backend/internal/shared/server/middleware"
	"learnanything-backend/internal/shared/server/respond"
	"learnanything-backend/internal/stats"
)

// RouterDeps are the handlers wired into the HTTP router.
type RouterDeps struct {
	Config            config.Config
	DocumentsHandler  *documents.Handler
	ProcessingHandler *processing.Handler
	QuizzesHandler    *quizzes.Handler
	AttemptsHandler   *attempts.Handler
	StatsHandler      *stats.Handler
	ProfilesHandler   *profiles.Handler
	GoogleAuth        *googleauth.GoogleService
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
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(rateLimitConfig()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	deps.DocumentsHandler.RegisterRoutes(api)
	deps.ProcessingHandler.RegisterRoutes(api)
	deps.QuizzesHandler.RegisterRoutes(api)
	deps.AttemptsHandler.RegisterRoutes(api)
	deps.StatsHandler.RegisterRoutes(api)
	deps.ProfilesHandler.RegisterRoutes(api)

	return r
}

// rateLimitConfig throttles the expensive endpoints per principal. Uploads
// and generation runs hit storage and the AI provider; reads are unlimited.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"upload":   {Rate: 0.5, Burst: 5},
			"generate": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			path := c.FullPath()
			if path == "" {
				path = c.Request.URL.Path
			}
			switch {
			case strings.HasSuffix(path, "/generate"):
				return "generate"
			case strings.HasSuffix(path, "/documents"):
				return "upload"
			default:
				return ""
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
