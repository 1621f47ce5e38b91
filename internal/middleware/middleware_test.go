package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/chatrooms/pkg/auth"
)

func setupAuth(t *testing.T) (*auth.JWTManager, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return auth.NewJWTManager("test-secret", time.Hour), mr, rdb
}

func gatedRouter(gate gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", gate, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	jwtMgr, mr, rdb := setupAuth(t)
	r := gatedRouter(AuthMiddleware(jwtMgr, rdb))

	valid, err := jwtMgr.Generate("user-42")
	require.NoError(t, err)
	revoked, err := jwtMgr.Generate("user-7")
	require.NoError(t, err)
	require.NoError(t, mr.Set(blacklistPrefix+revoked, "1"))
	noSubject, err := jwtMgr.Generate("")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "user-42"},
		{"no header", "", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, ""},
		{"blacklisted", "Bearer " + revoked, http.StatusUnauthorized, ""},
		{"empty subject", "Bearer " + noSubject, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				require.Equal(t, tt.wantBody, w.Body.String())
			} else {
				require.Contains(t, w.Body.String(), `"message"`)
			}
		})
	}
}

func TestAuthMiddleware_RedisDown(t *testing.T) {
	jwtMgr, mr, rdb := setupAuth(t)
	r := gatedRouter(AuthMiddleware(jwtMgr, rdb))

	token, err := jwtMgr.Generate("user-1")
	require.NoError(t, err)
	mr.Close()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WithoutRedis(t *testing.T) {
	jwtMgr, _, _ := setupAuth(t)
	r := gatedRouter(AuthMiddleware(jwtMgr, nil))

	token, err := jwtMgr.Generate("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-1", w.Body.String())
}

func TestWSAuthMiddleware_QueryToken(t *testing.T) {
	jwtMgr, _, rdb := setupAuth(t)
	r := gatedRouter(WSAuthMiddleware(jwtMgr, rdb))

	token, err := jwtMgr.Generate("user-9")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-9", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	require.NotEmpty(t, generated)
	require.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	require.Equal(t, "abc-123", w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Contains(t, buf.String(), "level=INFO")
	require.Contains(t, buf.String(), "path=/ok")
	require.Contains(t, buf.String(), "status=200")

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Contains(t, buf.String(), "level=ERROR")
	require.Contains(t, buf.String(), "status=500")
	require.Contains(t, buf.String(), "req_id=")
}
