// README: Gin transport; registers routes and delegates turns to the dialog engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mvgbot/internal/http/handlers"
	"mvgbot/internal/http/middleware"
)

type ServerDeps struct {
	Bot handlers.TurnHandler
	// Usage is optional; when nil the stats endpoint is not registered.
	Usage handlers.UsageStats
}

type Server struct {
	bot   handlers.TurnHandler
	usage handlers.UsageStats
}

func NewServer(deps ServerDeps) *Server {
	return &Server{bot: deps.Bot, usage: deps.Usage}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	messageHandler := handlers.NewMessageHandler(s.bot)
	r.POST("/api/messages", messageHandler.Post)
	r.DELETE("/api/sessions/:id", messageHandler.EndSession)

	if s.usage != nil {
		usageHandler := handlers.NewUsageHandler(s.usage)
		r.GET("/api/usage/stats", usageHandler.Stats)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
