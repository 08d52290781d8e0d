// internal/middleware/cors_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsTestRouter(allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(allowedOrigins))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func corsRequest(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", origin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowsAllByDefault(t *testing.T) {
	r := corsTestRouter([]string{"*"})

	w := corsRequest(r, "http://dashboard.local")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictsToConfiguredOrigins(t *testing.T) {
	r := corsTestRouter([]string{"http://dashboard.local"})

	w := corsRequest(r, "http://dashboard.local")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://dashboard.local", w.Header().Get("Access-Control-Allow-Origin"))

	w = corsRequest(r, "http://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
