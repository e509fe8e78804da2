package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"decision-coach/internal/decision"
	"decision-coach/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHandler_AllowsInitialSetupOnce(t *testing.T) {
	s := newTestServer(t)

	w := s.do("POST", "/setup", SetupRequest{Username: "admin1", Password: "pw1"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["setup_complete"])
	assert.Equal(t, "admin", body["role"])
	assert.NotContains(t, w.Body.String(), "pw1")

	var resp SetupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, decision.DefaultPriorities(), resp.DefaultPriorities)
	require.NotEmpty(t, resp.Token)

	// The setup token is already a live session.
	me := s.do("GET", "/auth/me", nil, resp.Token)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	assert.Equal(t, "admin1", decode(t, me)["username"])
	assert.NotNil(t, decode(t, me)["lastLoginAt"])

	w = s.do("POST", "/setup", SetupRequest{Username: "admin2", Password: "pw2"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Setup not allowed; users already exist", errorMessage(t, w))
}

func TestSetupHandler_RequiresCredentials(t *testing.T) {
	s := newTestServer(t)
	w := s.do("POST", "/setup", SetupRequest{Username: "  ", Password: "pw"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username and password required", errorMessage(t, w))

	w = s.do("POST", "/setup", SetupRequest{Username: "two words", Password: "pw"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, user.ErrUsernameInvalid.Error(), errorMessage(t, w))
}

func TestLoginHandler_NeedsSetup(t *testing.T) {
	s := newTestServer(t)
	w := s.do("POST", "/auth/login", LoginRequest{Username: "x", Password: "y"}, "")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"need_setup":true`)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "alice")
	w := s.do("POST", "/auth/login", LoginRequest{Username: "alice", Password: "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password", errorMessage(t, w))
}

func TestMeAndLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice")

	w := s.do("GET", "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["username"])

	w = s.do("GET", "/users/online", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["online"])

	require.Equal(t, http.StatusOK, s.do("POST", "/auth/logout", nil, token).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do("GET", "/auth/me", nil, token).Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/auth/me", "/decisions", "/drafts"} {
		w := s.do("GET", path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
