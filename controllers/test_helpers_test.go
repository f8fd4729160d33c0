// file: controllers/test_helpers_test.go
package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"zeroun-site/middleware"
	"zeroun-site/models"
	"zeroun-site/services"
	"zeroun-site/store"
)

// setupTestRouter wires a fresh seeded store and real services into the
// package and returns a router with the same route layout as main.
func setupTestRouter(t *testing.T) (*gin.Engine, *services.MockMailService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "site.db"))
	require.NoError(t, err)
	require.NoError(t, st.Seed())
	t.Cleanup(func() { st.Close() })

	auth := services.NewAuthService("test-secret")
	mail := new(services.MockMailService)

	SetStore(st)
	SetServices(auth, mail)
	SetConfig("http://localhost:8080", t.TempDir())

	router := gin.New()
	router.GET("/health", Health)
	api := router.Group("/api")
	api.GET("/", APIRoot)
	api.GET("/events", ListEvents)
	api.GET("/events/:id/qrcode", EventQRCode)
	api.GET("/team", ListTeam)
	api.GET("/gallery", ListGallery)
	api.GET("/videos", ListVideos)
	api.GET("/site-content", GetSiteContent)
	api.POST("/admin/login", Login)
	api.POST("/admin/forgot-password", ForgotPassword)
	api.POST("/admin/reset-password", ResetPassword)

	protected := api.Group("", middleware.TokenRequired(auth))
	protected.POST("/events", CreateEvent)
	protected.PUT("/events/:id", UpdateEvent)
	protected.DELETE("/events/:id", DeleteEvent)
	protected.POST("/team", CreateTeamMember)
	protected.PUT("/team/:id", UpdateTeamMember)
	protected.DELETE("/team/:id", DeleteTeamMember)
	protected.POST("/gallery", CreateGalleryItem)
	protected.PUT("/gallery/:id", UpdateGalleryItem)
	protected.DELETE("/gallery/:id", DeleteGalleryItem)
	protected.POST("/videos", CreateVideo)
	protected.PUT("/videos/:id", UpdateVideo)
	protected.DELETE("/videos/:id", DeleteVideo)
	protected.PUT("/site-content", UpdateSiteContent)
	protected.GET("/admin/verify", Verify)
	protected.PUT("/admin/update", UpdateAccount)
	protected.PUT("/admin/change-password", ChangePassword)
	protected.GET("/admin/download-website", DownloadWebsite)

	return router, mail
}

// loginToken logs the seeded admin in and returns the bearer token.
func loginToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	form := url.Values{}
	form.Set("username", store.DefaultAdminUsername)
	form.Set("password", "admin123")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var token models.Token
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

// doJSON performs a JSON request, optionally authenticated.
func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
