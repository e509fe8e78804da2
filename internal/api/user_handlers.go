package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"decision-coach/internal/auth"
	"decision-coach/internal/config"
	"decision-coach/internal/db"
	"decision-coach/internal/user"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func LoginHandler(cfg *config.Config, sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		// If no users exist, indicate need for setup
		var count int64
		if err := db.DB.Model(&user.User{}).Count(&count).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DB error")
			return
		}
		if count == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Initial setup required", "need_setup": true}})
			return
		}
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		var u user.User
		if err := db.DB.Where("username = ?", req.Username).First(&u).Error; err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		if err := user.CheckPassword(u.PasswordHash, req.Password); err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		login, ok := openSession(c, cfg, sessions, &u)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, login)
	}
}

// openSession issues a token for u, stores it as the user's only live
// session and stamps the login time.
func openSession(c *gin.Context, cfg *config.Config, sessions *auth.Sessions, u *user.User) (LoginResponse, bool) {
	token, err := auth.IssueSessionToken(cfg.Server.JWTSecret, *u, auth.SessionTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return LoginResponse{}, false
	}
	if err := sessions.Set(c.Request.Context(), u.ID, token, auth.SessionTTL); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to store session")
		return LoginResponse{}, false
	}
	now := time.Now().UTC()
	if err := db.DB.Model(u).Update("last_login_at", now).Error; err == nil {
		u.LastLoginAt = &now
	}
	return LoginResponse{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	}, true
}

// createAccount validates the username and inserts a new user with role.
// On failure it has already written the error response.
func createAccount(c *gin.Context, rawName, password string, role user.Role) (user.User, bool) {
	name, err := user.NormalizeUsername(rawName)
	if errors.Is(err, user.ErrUsernameRequired) {
		respondError(c, http.StatusBadRequest, "Username and password required")
		return user.User{}, false
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return user.User{}, false
	}
	pwHash, err := user.HashPassword(password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Password hash failed")
		return user.User{}, false
	}
	u := user.User{Username: name, PasswordHash: pwHash, Role: role}
	if err := db.DB.Create(&u).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			respondError(c, http.StatusBadRequest, "Username already exists")
			return user.User{}, false
		}
		respondError(c, http.StatusInternalServerError, "DB error")
		return user.User{}, false
	}
	return u, true
}

func LogoutHandler(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := auth.UserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		_ = sessions.Delete(c.Request.Context(), userId)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := auth.UserID(c)
		var u user.User
		if err := db.DB.First(&u, userId).Error; err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		c.JSON(http.StatusOK, userView(u))
	}
}

// OnlineUserCountHandler returns the number of users with a live session.
func OnlineUserCountHandler(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := sessions.OnlineUserCount(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to count online users")
			return
		}
		c.JSON(http.StatusOK, gin.H{"online": count})
	}
}
