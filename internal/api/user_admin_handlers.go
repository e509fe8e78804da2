package api

import (
	"net/http"

	"decision-coach/internal/db"
	"decision-coach/internal/user"

	"github.com/gin-gonic/gin"
)

func userView(u user.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"username":    u.Username,
		"role":        u.Role,
		"lastLoginAt": u.LastLoginAt,
		"createdAt":   u.CreatedAt,
	}
}

// GET /users  [admin only]
func ListUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []user.User
		if err := db.DB.Order("id").Find(&users).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "List error")
			return
		}
		result := make([]gin.H, 0, len(users))
		for _, u := range users {
			result = append(result, userView(u))
		}
		c.JSON(http.StatusOK, result)
	}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// POST /users  [admin only]
func CreateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
			respondError(c, http.StatusBadRequest, "Missing username or password")
			return
		}
		role, err := user.ParseRole(req.Role)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Unknown role")
			return
		}
		newUser, ok := createAccount(c, req.Username, req.Password, role)
		if !ok {
			return
		}
		c.JSON(http.StatusCreated, userView(newUser))
	}
}
