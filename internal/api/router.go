package api

import (
	"decision-coach/internal/auth"
	"decision-coach/internal/config"
	"decision-coach/internal/db"
	"decision-coach/internal/llm"
	"decision-coach/internal/logger"
	"decision-coach/internal/metrics"
	"decision-coach/internal/store"
	"decision-coach/internal/user"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators shared by the handlers.
type Deps struct {
	Sessions *auth.Sessions
	Repo     *store.Repository
	Enhancer *llm.Enhancer
	Metrics  *metrics.Metrics
	Log      *logger.Logger
}

func usersExist() bool {
	var count int64
	if db.DB == nil {
		return false
	}
	db.DB.Model(&user.User{}).Count(&count)
	return count > 0
}

func SetupRouter(cfg *config.Config, deps *Deps) *gin.Engine {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Enhancer == nil {
		deps.Enhancer = llm.NewEnhancer(nil, nil, nil, deps.Metrics, deps.Log)
	}

	r := gin.New()
	r.Use(gin.Recovery(), CORS(cfg), RequestMetrics(deps.Metrics))

	subpath := cfg.Server.Subpath // e.g. "/decision-coach", always starts with '/'
	requireUser := auth.AuthMiddleware(cfg, deps.Sessions, false)
	requireAdmin := auth.AuthMiddleware(cfg, deps.Sessions, true)
	throttle := RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)

	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler(deps))
		group.GET("/config", configHandler(cfg, deps))
		group.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

		// Setup: only if no users
		group.POST("/setup", SetupHandler(cfg, deps.Sessions))

		// Auth
		group.POST("/auth/login", throttle, LoginHandler(cfg, deps.Sessions))
		group.POST("/auth/logout", requireUser, LogoutHandler(deps.Sessions))
		group.GET("/auth/me", requireUser, MeHandler())

		group.GET("/priorities/defaults", DefaultPrioritiesHandler())

		// Stateless analysis
		analysis := group.Group("/analysis", throttle)
		analysis.POST("/score", ScoreHandler(deps))
		analysis.POST("/emotions", EmotionsHandler(deps))
		analysis.POST("/patterns", PatternsHandler(deps))
		analysis.POST("/priorities", PrioritiesHandler(deps))
		analysis.POST("/questions", QuestionsHandler(deps))
		analysis.POST("/report", ReportHandler(deps))
		analysis.POST("/confidence", ConfidenceHandler(deps))
		analysis.GET("/prompts/:category", PromptHandler())

		// Saved decisions
		group.GET("/decisions", requireUser, ListDecisionsHandler(deps))
		group.POST("/decisions", requireUser, CreateDecisionHandler(deps))
		group.GET("/decisions/:id", requireUser, GetDecisionHandler(deps))
		group.DELETE("/decisions/:id", requireUser, DeleteDecisionHandler(deps))

		// Wizard draft, one per user
		group.GET("/drafts", requireUser, GetDraftHandler(deps))
		group.PUT("/drafts", requireUser, SaveDraftHandler(deps))
		group.DELETE("/drafts", requireUser, ClearDraftHandler(deps))

		// Admin: users
		group.GET("/users", requireAdmin, ListUsersHandler())
		group.POST("/users", requireAdmin, CreateUserHandler())

		// Online users count
		group.GET("/users/online", OnlineUserCountHandler(deps.Sessions))
	}
	return r
}
