package server

import (
	"net/http"
	"time"

	httpHandler "ember-scriptorium/interfaces/http"
	"ember-scriptorium/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	quoteHandler httpHandler.IQuoteHandler,
	postHandler httpHandler.IPostHandler,
	settingsHandler httpHandler.ISettingsHandler,
	secretKey string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			// Single-operator tool; the dashboard origin is not pinned.
			return true
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "The Ember Scriptorium v1 API"})
	})
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))

	api.POST("/quotes/upload", quoteHandler.Upload)
	api.GET("/quotes", quoteHandler.List)

	api.POST("/posts/generate", postHandler.Generate)
	api.GET("/posts/queue", postHandler.Queue)
	api.GET("/posts/approved", postHandler.Approved)
	api.POST("/posts/approve/:postId", postHandler.Approve)
	api.POST("/posts/regenerate/:postId", postHandler.Regenerate)
	api.GET("/posts/download/:postId", postHandler.Download)

	api.POST("/settings", settingsHandler.Update)
	api.GET("/settings", settingsHandler.Status)

	return router
}
