package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"b200/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func protectedRouter(jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.Use(extra...)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject": c.GetString("subject"),
			"role":    c.GetString("role"),
		})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", 1*time.Hour)
	validToken, _ := jwtService.GenerateToken("operator", RoleAdmin)
	router := protectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operator")
	assert.Contains(t, w.Body.String(), RoleAdmin)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := protectedRouter(jwt.New("wrong-secret", 1*time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_NoToken(t *testing.T) {
	router := protectedRouter(jwt.New("secret", 1*time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	router := protectedRouter(jwt.New("secret", 1*time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestAdminOnly_RejectsOtherRoles(t *testing.T) {
	jwtService := jwt.New("secret", 1*time.Hour)
	token, _ := jwtService.GenerateToken("guest", "viewer")
	router := protectedRouter(jwtService, AdminOnly())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}
