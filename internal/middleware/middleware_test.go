package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-123"

func newRouter(t *testing.T, rate string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	authed := r.Group("/", AuthMiddleware(testSecret))
	if rate != "" {
		lim, err := NewMemoryRateLimiter(rate)
		require.NoError(t, err)
		authed.Use(RateLimit(lim))
	}
	authed.GET("/whoami", func(c *gin.Context) {
		actor, _ := GetActorFromContext(c)
		ctxActor, _ := GetActorFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"actor": actor, "ctxActor": ctxActor, "role": GetRoleFromContext(c)})
	})
	authed.GET("/admin", RequireRole(utils.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func bearer(t *testing.T, actor, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWT(actor, role, testSecret, time.Hour, "test")
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(t, "")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", bearer(t, "ana@example.com", utils.RoleStaff), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", bearer(t, "ana@example.com", utils.RoleStaff))
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"actor":"ana@example.com","ctxActor":"ana@example.com","role":"staff"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, "ana@example.com", utils.RoleStaff))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, "boss@example.com", utils.RoleAdmin))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit_PerActor(t *testing.T) {
	r := newRouter(t, "2-M")
	ana := bearer(t, "ana@example.com", utils.RoleStaff)
	ben := bearer(t, "ben@example.com", utils.RoleStaff)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", ana)
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", ben)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "another actor has its own budget")
}

func TestNewMemoryRateLimiter_BadFormat(t *testing.T) {
	_, err := NewMemoryRateLimiter("lots")
	assert.Error(t, err)
}
