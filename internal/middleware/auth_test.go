package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/policy"
	"github.com/notehive/notehive-backend/internal/requestdata"
	"github.com/notehive/notehive-backend/internal/types"
)

// stubAuthService accepts exactly one token and returns a fixed
// principal for it.
type stubAuthService struct {
	token string
	email string
	role  types.Role
}

func (s *stubAuthService) RoleFor(ctx context.Context, email, password string) (types.Role, error) {
	return "", apierr.Unauthorized("invalid credentials")
}

func (s *stubAuthService) IssueToken(email string, role types.Role) (string, error) {
	return s.token, nil
}

func (s *stubAuthService) VerifyToken(tokenString string) (string, types.Role, error) {
	if tokenString != s.token {
		return "", "", apierr.Unauthorized("invalid or expired token")
	}
	return s.email, s.role, nil
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string, role types.Role) (*types.User, error) {
	return nil, apierr.InvalidInput("not implemented")
}

func (s *stubAuthService) GetAccessTTL() time.Duration { return time.Hour }

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newAuthTestRouter(role types.Role) (*gin.Engine, *requestdata.RequestData) {
	gin.SetMode(gin.TestMode)
	captured := &requestdata.RequestData{}

	am := NewAuthMiddleware(testLogger(), &stubAuthService{token: "good-token", email: "admin@example.com", role: role})
	router := gin.New()
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
			*captured = *rd
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, captured
}

func TestRequireAuthMissingHeader(t *testing.T) {
	t.Parallel()
	router, _ := newAuthTestRouter(types.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got=%d want=%d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	t.Parallel()
	router, _ := newAuthTestRouter(types.RoleAdmin)

	for _, header := range []string{"good-token", "Basic good-token", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status got=%d want=%d", header, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	t.Parallel()
	router, _ := newAuthTestRouter(types.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got=%d want=%d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthAttachesPrincipal(t *testing.T) {
	t.Parallel()
	router, captured := newAuthTestRouter(types.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d", w.Code, http.StatusOK)
	}
	if captured.Email != "admin@example.com" {
		t.Fatalf("email: got=%q want=%q", captured.Email, "admin@example.com")
	}
	if captured.Role != types.RoleAdmin {
		t.Fatalf("role: got=%s want=%s", captured.Role, types.RoleAdmin)
	}
}

func TestRequirePolicyForbidsUsersFromMutations(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	am := NewAuthMiddleware(testLogger(), &stubAuthService{token: "user-token", email: "user@example.com", role: types.RoleUser})
	router := gin.New()
	router.POST("/streams",
		am.RequireAuth(),
		RequirePolicy(policy.OpCreate, policy.LevelStream),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	router.GET("/streams",
		am.RequireAuth(),
		RequirePolicy(policy.OpList, policy.LevelStream),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/streams", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("POST as USER: status got=%d want=%d", w.Code, http.StatusForbidden)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/streams", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET as USER: status got=%d want=%d", w.Code, http.StatusOK)
	}
}

func TestRequirePolicyWithoutPrincipal(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/streams",
		RequirePolicy(policy.OpList, policy.LevelStream),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/streams", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got=%d want=%d", w.Code, http.StatusUnauthorized)
	}
}
