package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newshub-app/newshub/store"
	Logger "github.com/newshub-app/newshub/utils/log"
	"github.com/pkg/errors"
)

// respondError maps the store taxonomy onto HTTP statuses. Anything
// unclassified is an internal error; its detail is logged, not leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConstraintViolation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrStorageUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "asset storage unavailable"})
	default:
		Logger.Log.Error("internal error: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
