package api

import (
	"net/http"

	"decision-coach/internal/config"

	"github.com/gin-gonic/gin"
)

// GET /health
func healthHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"llm":    deps.Enhancer.Enabled(),
		})
	}
}

// GET /config
func configHandler(cfg *config.Config, deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
			"llm": gin.H{
				"enabled":    deps.Enhancer.Enabled(),
				"model":      cfg.LLM.Model,
				"dailyLimit": cfg.LLM.DailyLimit,
				"remaining":  deps.Enhancer.Remaining(c.Request.Context()),
			},
			"setupRequired": !usersExist(),
		})
	}
}
