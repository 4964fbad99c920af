package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"kiosco/internal/storage"
)

// Health reports whether the store is reachable.
func Health(h *storage.Handle) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.Do(c.Request.Context(), func(db *sqlx.DB) error {
			var one int
			return db.GetContext(c.Request.Context(), &one, `SELECT 1`)
		})
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
