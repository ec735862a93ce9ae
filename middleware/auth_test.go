package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func actorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalAuth())
	r.GET("/whoami", func(c *gin.Context) {
		if actor := ActorFrom(c); actor != nil {
			c.JSON(http.StatusOK, gin.H{"employee_id": actor.EmployeeID, "role": actor.Role})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})
	return r
}

func TestOptionalAuthWithValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := actorRouter()

	token, err := SignAccessToken(7, "OWNER")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employee_id":7`)
	assert.Contains(t, w.Body.String(), `"role":"OWNER"`)
}

func TestOptionalAuthPassesAnonymousThrough(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := actorRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "no token never means 401")
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := actorRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestOptionalAuthRejectsForgedSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "other-secret")
	token, err := SignAccessToken(7, "OWNER")
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "test-secret")
	r := actorRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}
