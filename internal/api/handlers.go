package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/tandem/internal/app"
)

type handler struct {
	app *app.App
}

func (h *handler) health(c *gin.Context) {
	if err := h.app.Repo().Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// list writes items as a JSON array, never null
func list[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}
