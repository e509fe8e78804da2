package api

import (
	"errors"
	"net/http"
	"strings"

	"decision-coach/internal/auth"
	"decision-coach/internal/decision"
	"decision-coach/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SaveDecisionRequest struct {
	Decision        string              `json:"decision"`
	Options         []decision.Option   `json:"options"`
	Priorities      []decision.Priority `json:"priorities"`
	ConfidenceScore *int                `json:"confidenceScore,omitempty"`
	ReflectionNotes string              `json:"reflectionNotes,omitempty"`
}

func currentUser(c *gin.Context) (uint, bool) {
	id, ok := auth.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
	}
	return id, ok
}

func decisionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid decision id")
		return uuid.Nil, false
	}
	return id, true
}

// POST /decisions freezes the recommendation and clears the user's draft.
func CreateDecisionHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req SaveDecisionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if strings.TrimSpace(req.Decision) == "" {
			respondError(c, http.StatusBadRequest, "Decision text required")
			return
		}
		if err := decision.ValidatePriorities(req.Priorities); err != nil {
			respondErr(c, deps, err)
			return
		}
		if err := decision.ValidateOptions(req.Options, true); err != nil {
			respondErr(c, deps, err)
			return
		}
		if req.ConfidenceScore != nil && (*req.ConfidenceScore < 1 || *req.ConfidenceScore > 10) {
			respondError(c, http.StatusBadRequest, "Confidence must be between 1 and 10")
			return
		}

		rec, _ := store.BuildRecommendation(req.Options, req.Priorities)
		d := store.SavedDecision{
			UserID:          userID,
			Decision:        req.Decision,
			Options:         datatypes.NewJSONType(req.Options),
			Priorities:      datatypes.NewJSONType(req.Priorities),
			Recommendation:  datatypes.NewJSONType(rec),
			ConfidenceScore: req.ConfidenceScore,
			ReflectionNotes: req.ReflectionNotes,
		}
		ctx := c.Request.Context()
		if err := deps.Repo.Create(ctx, &d); err != nil {
			respondErr(c, deps, err)
			return
		}
		if err := deps.Repo.ClearDraft(ctx, userID); err != nil {
			deps.Log.Warn("draft not cleared after save", "user_id", userID, "error", err)
		}
		deps.Log.Info("decision saved", "user_id", userID, "decision_id", d.ID.String(), "winner", rec.WinnerName)
		c.JSON(http.StatusCreated, d)
	}
}

// GET /decisions
func ListDecisionsHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		list, err := deps.Repo.List(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"decisions": list})
	}
}

// GET /decisions/:id
func GetDecisionHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := decisionID(c)
		if !ok {
			return
		}
		d, err := deps.Repo.Get(c.Request.Context(), userID, id)
		if err != nil {
			respondErr(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// DELETE /decisions/:id
func DeleteDecisionHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := decisionID(c)
		if !ok {
			return
		}
		if err := deps.Repo.Delete(c.Request.Context(), userID, id); err != nil {
			respondErr(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Decision deleted"})
	}
}

// GET /drafts
func GetDraftHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		d, err := deps.Repo.LoadDraft(c.Request.Context(), userID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"draft": nil})
			return
		}
		if err != nil {
			respondErr(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": d.Data.Data(), "updatedAt": d.UpdatedAt})
	}
}

// PUT /drafts
func SaveDraftHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var data store.DraftData
		if err := c.ShouldBindJSON(&data); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		saved, err := deps.Repo.SaveDraft(c.Request.Context(), userID, data)
		if err != nil {
			respondErr(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": saved})
	}
}

// DELETE /drafts
func ClearDraftHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		if err := deps.Repo.ClearDraft(c.Request.Context(), userID); err != nil {
			respondErr(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Draft cleared"})
	}
}
