package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"decision-coach/internal/auth"
	"decision-coach/internal/config"
	"decision-coach/internal/db"
	"decision-coach/internal/decision"
	"decision-coach/internal/kv"
	"decision-coach/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	router *gin.Engine
	cfg    *config.Config
	deps   *Deps
}

// newTestServer points db.DB at a fresh in-memory database.
func newTestServer(t *testing.T, tweak ...func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	prev := db.DB
	db.DB = conn
	t.Cleanup(func() {
		db.DB = prev
		_ = sqlDB.Close()
	})

	mem, err := kv.NewMemoryStore(256)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.JWTSecret = "test-secret"
	for _, f := range tweak {
		f(cfg)
	}
	deps := &Deps{Sessions: auth.NewSessions(mem), Repo: store.NewRepository(conn)}
	return &testServer{router: SetupRouter(cfg, deps), cfg: cfg, deps: deps}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login runs setup for username and returns a bearer token.
func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	w := s.do("POST", "/setup", SetupRequest{Username: username, Password: "pw"}, "")
	require.Equal(t, 201, w.Code, w.Body.String())
	w = s.do("POST", "/auth/login", LoginRequest{Username: username, Password: "pw"}, "")
	require.Equal(t, 200, w.Code, w.Body.String())
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	e, ok := body["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	msg, _ := e["message"].(string)
	return msg
}

func sampleRequest() DecisionRequest {
	return DecisionRequest{
		Decision: "Should I switch jobs?",
		Options: []decision.Option{
			{ID: "a", Name: "Stay", EmotionalText: "I feel safe and secure", Scores: map[string]int{"money": 5, "happiness": 3, "growth": 3, "stability": 4, "risk": 3}},
			{ID: "b", Name: "Switch", EmotionalText: "I'm excited but scared", Scores: map[string]int{"money": 2, "happiness": 4, "growth": 5, "stability": 2, "risk": 4}},
		},
		Priorities: decision.DefaultPriorities(),
	}
}
