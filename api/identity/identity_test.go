package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/beka-birhanu/vinom-runner/infrastruture/token"
	"github.com/beka-birhanu/vinom-runner/service"
	"github.com/beka-birhanu/vinom-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	registerErr error
	user        *dmn.User
}

func (s *stubAuthenticator) Register(username, password string) error {
	return s.registerErr
}

func (s *stubAuthenticator) SignIn(username, password string) (*dmn.User, string, error) {
	if s.user == nil || username != s.user.Username {
		return nil, "", service.ErrInvalidCredentials
	}
	return s.user, "token", nil
}

func newEngine(ctrl *Controller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	ctrl.RegisterPublic(engine.Group("/v1"))
	return engine
}

func post(engine http.Handler, path string, body any) *httptest.ResponseRecorder {
	encoded, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAccountController(t *testing.T) {
	user := &dmn.User{ID: uuid.New(), Username: "maze_runner"}

	tests := []struct {
		name string
		auth *stubAuthenticator
		path string
		body any
		want int
	}{
		{name: "register", auth: &stubAuthenticator{}, path: "/v1/auth/register", body: AuthRequest{Username: "maze_runner", Password: "pw"}, want: http.StatusCreated},
		{name: "register taken", auth: &stubAuthenticator{registerErr: dmn.ErrUsernameTaken}, path: "/v1/auth/register", body: AuthRequest{Username: "maze_runner", Password: "pw"}, want: http.StatusConflict},
		{name: "register weak", auth: &stubAuthenticator{registerErr: dmn.ErrWeakPassword}, path: "/v1/auth/register", body: AuthRequest{Username: "maze_runner", Password: "pw"}, want: http.StatusBadRequest},
		{name: "register short username", auth: &stubAuthenticator{registerErr: dmn.ErrUsernameTooShort}, path: "/v1/auth/register", body: AuthRequest{Username: "ab", Password: "pw"}, want: http.StatusBadRequest},
		{name: "register storage failure", auth: &stubAuthenticator{registerErr: errors.New("saving user: connection refused")}, path: "/v1/auth/register", body: AuthRequest{Username: "maze_runner", Password: "pw"}, want: http.StatusInternalServerError},
		{name: "register missing password", auth: &stubAuthenticator{}, path: "/v1/auth/register", body: gin.H{"username": "maze_runner"}, want: http.StatusBadRequest},
		{name: "login", auth: &stubAuthenticator{user: user}, path: "/v1/auth/login", body: AuthRequest{Username: "maze_runner", Password: "pw"}, want: http.StatusOK},
		{name: "login rejected", auth: &stubAuthenticator{user: user}, path: "/v1/auth/login", body: AuthRequest{Username: "someone", Password: "pw"}, want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newEngine(NewController(tt.auth)), tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	t.Run("login response", func(t *testing.T) {
		rec := post(newEngine(NewController(&stubAuthenticator{user: user})), "/v1/auth/login", AuthRequest{Username: "maze_runner", Password: "pw"})
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, AuthResponse{ID: user.ID.String(), Username: "maze_runner", Token: "token"}, resp)
	})
}

func TestMiddleware(t *testing.T) {
	tokens, err := token.NewJwtService("test-secret", "vinom-runner")
	require.NoError(t, err)
	userID := uuid.New()
	valid, err := tokens.Generate(map[string]interface{}{i.ClaimUserID: userID.String()}, time.Minute)
	require.NoError(t, err)
	noUser, err := tokens.Generate(map[string]interface{}{}, time.Minute)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	echo := func(c *gin.Context) { c.String(http.StatusOK, UserID(c).String()) }
	engine.GET("/strict", Authoriz(tokens), echo)
	engine.GET("/optional", Identify(tokens), echo)

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "strict with token", path: "/strict", header: "Bearer " + valid, wantCode: http.StatusOK, wantBody: userID.String()},
		{name: "strict without token", path: "/strict", wantCode: http.StatusUnauthorized},
		{name: "strict malformed header", path: "/strict", header: "Token " + valid, wantCode: http.StatusUnauthorized},
		{name: "strict token without user", path: "/strict", header: "Bearer " + noUser, wantCode: http.StatusUnauthorized},
		{name: "optional anonymous", path: "/optional", wantCode: http.StatusOK, wantBody: uuid.Nil.String()},
		{name: "optional with token", path: "/optional", header: "bearer " + valid, wantCode: http.StatusOK, wantBody: userID.String()},
		{name: "optional bad token", path: "/optional", header: "Bearer garbage", wantCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
