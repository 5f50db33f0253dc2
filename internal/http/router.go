// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripscout/internal/http/handlers"
	"tripscout/internal/http/middleware"
	"tripscout/internal/modules/conversation"
)

func NewRouter(chatService *conversation.Service, logger *slog.Logger) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS())

	chatHandler := handlers.NewChatHandler(chatService)
	r.POST("/api/chat", chatHandler.Chat)

	sessionHandler := handlers.NewSessionHandler(chatService)
	r.GET("/api/sessions/:id", sessionHandler.Get)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
