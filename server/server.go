// Package server wires the managers behind a gin router. It does request
// binding, error-to-status mapping and redirects; all behavior lives in the
// manager packages.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newshub-app/newshub/directory"
	"github.com/newshub-app/newshub/filestore"
	"github.com/newshub-app/newshub/newsasset"
	"github.com/newshub-app/newshub/subscription"
	"gorm.io/gorm"
)

type handler struct {
	directory     *directory.Service
	subscriptions *subscription.Manager
	assets        *newsasset.Manager
}

// NewRouter builds the full route table over the given stores.
func NewRouter(router *gin.Engine, db *gorm.DB, assets filestore.AssetStore) *gin.Engine {
	h := &handler{
		directory:     directory.NewService(db),
		subscriptions: subscription.NewManager(db),
		assets:        newsasset.NewManager(db, assets),
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	clients := router.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
		clients.GET("/:id/subscriptions", h.editSubscriptions)
		clients.POST("/:id/subscriptions/:boardID", h.register)
		clients.DELETE("/:id/subscriptions/:boardID", h.deregister)
	}

	boards := router.Group("/boards")
	{
		boards.GET("", h.listBoards)
		boards.POST("", h.createBoard)
		boards.GET("/:id", h.getBoard)
		boards.PUT("/:id", h.updateBoard)
		boards.DELETE("/:id", h.deleteBoard)
		boards.GET("/:id/news", h.listNews)
		boards.POST("/:id/news", h.createNews)
	}

	news := router.Group("/news")
	{
		news.GET("/:id", h.getNews)
		news.PUT("/:id", h.updateNews)
		news.DELETE("/:id", h.deleteNews)
	}

	return router
}
