package api

import (
	"net/http"

	"decision-coach/internal/auth"
	"decision-coach/internal/config"
	"decision-coach/internal/db"
	"decision-coach/internal/decision"
	"decision-coach/internal/user"

	"github.com/gin-gonic/gin"
)

type SetupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetupResponse signs the new admin in and hands back the priority set
// a first decision starts from.
type SetupResponse struct {
	LoginResponse
	DefaultPriorities []decision.Priority `json:"defaultPriorities"`
	SetupComplete     bool                `json:"setup_complete"`
}

// SetupHandler creates the first admin account and opens a session for
// it. It refuses once any user exists.
func SetupHandler(cfg *config.Config, sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var count int64
		if err := db.DB.Model(&user.User{}).Count(&count).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DB error")
			return
		}
		if count != 0 {
			respondError(c, http.StatusForbidden, "Setup not allowed; users already exist")
			return
		}
		var req SetupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if req.Password == "" {
			respondError(c, http.StatusBadRequest, "Username and password required")
			return
		}
		u, ok := createAccount(c, req.Username, req.Password, user.RoleAdmin)
		if !ok {
			return
		}
		login, ok := openSession(c, cfg, sessions, &u)
		if !ok {
			return
		}
		c.JSON(http.StatusCreated, SetupResponse{
			LoginResponse:     login,
			DefaultPriorities: decision.DefaultPriorities(),
			SetupComplete:     true,
		})
	}
}
