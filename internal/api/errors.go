package api

import (
	"errors"
	"net/http"

	"decision-coach/internal/decision"
	"decision-coach/internal/scoring"
	"decision-coach/internal/store"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": gin.H{"message": message}})
}

// respondErr maps domain errors to a status. Unknown errors are logged and
// hidden behind a generic message.
func respondErr(c *gin.Context, deps *Deps, err error) {
	switch {
	case errors.Is(err, decision.ErrInvalidInput), errors.Is(err, scoring.ErrConfidenceRange):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found")
	default:
		deps.Log.Error("request failed", "path", c.FullPath(), "error", err)
		respondError(c, http.StatusInternalServerError, "Internal error")
	}
}
