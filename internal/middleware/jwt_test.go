package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	roleID := uint(7)
	regionID := uint(3)
	token, err := GenerateToken(42, "DISPATCHER", &roleID, &regionID)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ping", RequireAuth(), func(c *gin.Context) {
		gotRole, ok := CallerRoleID(c)
		require.True(t, ok)
		assert.Equal(t, roleID, gotRole)

		gotRegion, ok := CallerRegionID(c)
		require.True(t, ok)
		assert.Equal(t, regionID, gotRegion)

		c.JSON(http.StatusOK, gin.H{"role": c.MustGet("role")})
	})

	w := authedRequest(t, r, token)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, authedRequest(t, r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, authedRequest(t, r, "garbage").Code)
}

func TestClaimsOmittedWhenNil(t *testing.T) {
	gin.SetMode(gin.TestMode)

	token, err := GenerateToken(1, "SUPER_ADMIN", nil, nil)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ping", RequireAuth(), func(c *gin.Context) {
		_, ok := CallerRoleID(c)
		assert.False(t, ok)
		_, ok = CallerRegionID(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, authedRequest(t, r, token).Code)
}

func TestRequireAuthWithRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", RequireAuthWithRole("SUPER_ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminToken, err := GenerateToken(1, "SUPER_ADMIN", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, authedRequest(t, r, adminToken).Code)

	otherToken, err := GenerateToken(2, "VOLUNTEER", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, authedRequest(t, r, otherToken).Code)
}
