// controllers/admin_controller_test.go
package controllers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"zeroun-site/models"
	"zeroun-site/store"
)

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	router, _ := setupTestRouter(t)

	form := url.Values{}
	form.Set("username", store.DefaultAdminUsername)
	form.Set("password", "admin123")
	w := postForm(router, "/api/admin/login", form)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var token models.Token
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := setupTestRouter(t)

	form := url.Values{}
	form.Set("username", store.DefaultAdminUsername)
	form.Set("password", "wrongpass")
	w := postForm(router, "/api/admin/login", form)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "Incorrect username or password")
}

func TestLoginUnknownUser(t *testing.T) {
	router, _ := setupTestRouter(t)

	form := url.Values{}
	form.Set("username", "nobody")
	form.Set("password", "whatever")
	w := postForm(router, "/api/admin/login", form)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyRoundTrip(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := loginToken(t, router)

	w := doJSON(router, "GET", "/api/admin/verify", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var identity models.AdminIdentity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &identity))
	assert.Equal(t, store.DefaultAdminUsername, identity.Username)
	assert.Equal(t, store.DefaultAdminEmail, identity.Email)
	assert.True(t, identity.Valid)
}

func TestVerifyWithoutToken(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "GET", "/api/admin/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateAccount(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := loginToken(t, router)

	w := doJSON(router, "PUT", "/api/admin/update", token, models.AdminUpdate{Email: "new@example.org"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Mis à jour")

	w = doJSON(router, "GET", "/api/admin/verify", token, nil)
	var identity models.AdminIdentity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &identity))
	assert.Equal(t, "new@example.org", identity.Email)
}

func TestUpdateAccountNoChanges(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := loginToken(t, router)

	w := doJSON(router, "PUT", "/api/admin/update", token, models.AdminUpdate{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No changes made")
}

func TestChangePassword(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := loginToken(t, router)

	// wrong old password
	w := doJSON(router, "PUT", "/api/admin/change-password", token,
		models.PasswordChange{OldPassword: "wrong", NewPassword: "fresh-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Ancien mot de passe incorrect")

	// right old password
	w = doJSON(router, "PUT", "/api/admin/change-password", token,
		models.PasswordChange{OldPassword: "admin123", NewPassword: "fresh-pass"})
	require.Equal(t, http.StatusOK, w.Code)

	// the new password logs in, the old one no longer does
	form := url.Values{}
	form.Set("username", store.DefaultAdminUsername)
	form.Set("password", "fresh-pass")
	assert.Equal(t, http.StatusOK, postForm(router, "/api/admin/login", form).Code)

	form.Set("password", "admin123")
	assert.Equal(t, http.StatusUnauthorized, postForm(router, "/api/admin/login", form).Code)
}

func TestForgotPasswordKnownEmail(t *testing.T) {
	router, mail := setupTestRouter(t)
	mail.On("SendResetEmail", store.DefaultAdminEmail, mock.AnythingOfType("string")).Return(nil)

	w := postForm(router, "/api/admin/forgot-password?email="+url.QueryEscape(store.DefaultAdminEmail), url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Si l'email existe")
	mail.AssertCalled(t, "SendResetEmail", store.DefaultAdminEmail, mock.AnythingOfType("string"))
}

func TestForgotPasswordUnknownEmailDoesNotLeak(t *testing.T) {
	router, mail := setupTestRouter(t)

	w := postForm(router, "/api/admin/forgot-password?email=stranger@example.org", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Si l'email existe")
	mail.AssertNotCalled(t, "SendResetEmail", mock.Anything, mock.Anything)
}

func TestResetPasswordRoundTrip(t *testing.T) {
	router, mail := setupTestRouter(t)

	var resetLink string
	mail.On("SendResetEmail", store.DefaultAdminEmail, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { resetLink = args.String(1) }).Return(nil)

	w := postForm(router, "/api/admin/forgot-password?email="+url.QueryEscape(store.DefaultAdminEmail), url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, resetLink)

	parsed, err := url.Parse(resetLink)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	w = postForm(router, "/api/admin/reset-password?token="+url.QueryEscape(token)+"&new_password=reset-pass", url.Values{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Mot de passe réinitialisé")

	// the token is single use
	w = postForm(router, "/api/admin/reset-password?token="+url.QueryEscape(token)+"&new_password=other", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// and the new password works
	form := url.Values{}
	form.Set("username", store.DefaultAdminUsername)
	form.Set("password", "reset-pass")
	assert.Equal(t, http.StatusOK, postForm(router, "/api/admin/login", form).Code)
}

func TestResetPasswordBadToken(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := postForm(router, "/api/admin/reset-password?token=bogus&new_password=x", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Token invalide ou expiré")
}

func TestDownloadWebsite(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := loginToken(t, router)

	// put something real into the export dir configured by setupTestRouter
	require.NoError(t, os.WriteFile(filepath.Join(exportDir, "index.html"), []byte("<html></html>"), 0600))

	w := doJSON(router, "GET", "/api/admin/download-website", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "website-full-export.zip")

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	names := []string{}
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "index.html")
}

func TestDownloadWebsiteRequiresToken(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "GET", "/api/admin/download-website", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
