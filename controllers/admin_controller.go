// Package controllers handles admin authentication and account management.
// File: controllers/admin_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zeroun-site/logger"
	"zeroun-site/middleware"
	"zeroun-site/models"
	"zeroun-site/services"
	"zeroun-site/store"
)

// resetTokenTTL is how long a password reset link stays usable.
const resetTokenTTL = time.Hour

// ------------------ login ------------------

// Login authenticates an admin. Credentials arrive form-encoded (the one
// non-JSON call on the API) and a signed bearer token goes back.
func Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	admin, err := contentStore.GetAdminByUsername(username)
	if err != nil || !authService.CheckPassword(admin.HashedPassword, password) {
		logger.Warn.Printf("[Login] Invalid login attempt for user %s", username)
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		return
	}

	token, err := authService.IssueToken(admin.Username)
	if err != nil {
		logger.Error.Printf("[Login] Failed to issue token for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	logger.Info.Printf("[Login] Admin %s authenticated", username)
	c.JSON(http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}

// Verify confirms the caller's token and returns the account identity.
func Verify(c *gin.Context) {
	username := middleware.Username(c)
	admin, err := contentStore.GetAdminByUsername(username)
	if err != nil {
		respondStoreError(c, err, "Admin user not found")
		return
	}
	c.JSON(http.StatusOK, models.AdminIdentity{Username: admin.Username, Email: admin.Email, Valid: true})
}

// ------------------ account management ------------------

// UpdateAccount changes the admin's username and/or email.
func UpdateAccount(c *gin.Context) {
	var upd models.AdminUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	username := middleware.Username(c)
	if _, err := contentStore.GetAdminByUsername(username); err != nil {
		respondStoreError(c, err, "Admin user not found")
		return
	}

	changed, err := contentStore.UpdateAdminAccount(username, upd)
	if err != nil {
		respondStoreError(c, err, "Admin user not found")
		return
	}
	if !changed {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No changes made"})
		return
	}
	logger.Info.Printf("[UpdateAccount] Account %s updated", username)
	c.JSON(http.StatusOK, gin.H{"message": "Mis à jour"})
}

// ChangePassword rotates the admin password given the old one.
func ChangePassword(c *gin.Context) {
	var in models.PasswordChange
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	username := middleware.Username(c)
	admin, err := contentStore.GetAdminByUsername(username)
	if err != nil {
		respondStoreError(c, err, "Admin user not found")
		return
	}
	if !authService.CheckPassword(admin.HashedPassword, in.OldPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Ancien mot de passe incorrect"})
		return
	}

	hash, err := authService.HashPassword(in.NewPassword)
	if err != nil {
		logger.Error.Printf("[ChangePassword] hash failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	if err := contentStore.SetAdminPassword(username, hash); err != nil {
		respondStoreError(c, err, "Admin user not found")
		return
	}
	logger.Info.Printf("[ChangePassword] Password changed for %s", username)
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe changé"})
}

// ------------------ password reset ------------------

// ForgotPassword mails a reset link. The response never reveals whether the
// email belongs to an account.
func ForgotPassword(c *gin.Context) {
	const reply = "Si l'email existe, un lien a été envoyé"
	email := c.Query("email")

	admin, err := contentStore.GetAdminByEmail(email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Error.Printf("[ForgotPassword] lookup failed: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"message": reply})
		return
	}

	token, err := authService.NewResetToken()
	if err != nil {
		logger.Error.Printf("[ForgotPassword] token generation failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"message": reply})
		return
	}
	if err := contentStore.SetResetToken(admin.Email, token, time.Now().UTC().Add(resetTokenTTL)); err != nil {
		logger.Error.Printf("[ForgotPassword] could not store reset token: %v", err)
		c.JSON(http.StatusOK, gin.H{"message": reply})
		return
	}

	link := fmt.Sprintf("%s/admin/reset-password?token=%s", siteURL, token)
	if err := mailService.SendResetEmail(admin.Email, link); err != nil {
		logger.Error.Printf("[ForgotPassword] mail failed: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": reply})
}

// ResetPassword consumes a reset token and sets a new password.
func ResetPassword(c *gin.Context) {
	token := c.Query("token")
	newPassword := c.Query("new_password")

	admin, err := contentStore.GetAdminByResetToken(token)
	if err != nil || admin.ResetExpires.Before(time.Now().UTC()) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Token invalide ou expiré"})
		return
	}

	hash, err := authService.HashPassword(newPassword)
	if err != nil {
		logger.Error.Printf("[ResetPassword] hash failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	if err := contentStore.ConsumeResetToken(token, hash); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Token invalide ou expiré"})
		return
	}
	logger.Info.Printf("[ResetPassword] Password reset for %s", admin.Username)
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe réinitialisé"})
}

// ------------------ website export ------------------

// DownloadWebsite streams a zip archive of the deployment directory.
func DownloadWebsite(c *gin.Context) {
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", "attachment; filename=website-full-export.zip")
	if err := services.ExportWebsite(exportDir, c.Writer); err != nil {
		// headers are already on the wire, all we can do is log
		logger.Error.Printf("[DownloadWebsite] export failed: %v", err)
	}
}
