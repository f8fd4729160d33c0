// Package models defines data structures used across the application.
// File: models/admin.go
package models

import "time"

// ----------------------- admin account model -----------------------

// AdminUser is the back-office account as stored. The password hash never
// leaves the server.
type AdminUser struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	ResetToken     string    `json:"-"`
	ResetExpires   time.Time `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Token is the response to a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
}

// AdminIdentity is the response to a verify call.
type AdminIdentity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Valid    bool   `json:"valid"`
}

// AdminUpdate changes the account's username and/or email.
type AdminUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PasswordChange rotates the password while logged in.
type PasswordChange struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}
