package httpauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedm/sdf-matter-translator/pkg/logger"
)

func newTestRouter(t *testing.T, mw *Middleware) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ping", mw.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("subject")})
	})
	return r
}

func TestAuthenticate_RejectsMissingHeader(t *testing.T) {
	mw := New("secret", "sdfmatterctl", logger.NewNoop())
	r := newTestRouter(t, mw)

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_RejectsMalformedHeader(t *testing.T) {
	mw := New("secret", "sdfmatterctl", logger.NewNoop())
	r := newTestRouter(t, mw)

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", "garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_AcceptsValidToken(t *testing.T) {
	mw := New("secret", "sdfmatterctl", logger.NewNoop())
	r := newTestRouter(t, mw)

	token, err := mw.IssueToken("cli", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_RejectsWrongSecret(t *testing.T) {
	issuer := New("secret-a", "sdfmatterctl", logger.NewNoop())
	verifier := New("secret-b", "sdfmatterctl", logger.NewNoop())
	r := newTestRouter(t, verifier)

	token, err := issuer.IssueToken("cli", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
