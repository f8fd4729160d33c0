// Package controllers contains the gin handlers for the REST surface.
// File: controllers/setup.go
package controllers

import (
	"zeroun-site/services"
	"zeroun-site/store"
)

// package-level collaborators, injected once from main (and from tests)
var (
	contentStore *store.Store
	authService  services.AuthServiceInterface
	mailService  services.MailServiceInterface
)

// configuration shared by handlers
var (
	siteURL   = "http://localhost:8080"
	exportDir = "."
)

// SetStore injects the storage layer.
func SetStore(s *store.Store) {
	contentStore = s
}

// SetServices injects the auth and mail services.
func SetServices(auth services.AuthServiceInterface, mail services.MailServiceInterface) {
	authService = auth
	mailService = mail
}

// SetConfig sets the public site URL (used in reset links) and the directory
// archived by the website export.
func SetConfig(publicURL, exportRoot string) {
	if publicURL != "" {
		siteURL = publicURL
	}
	if exportRoot != "" {
		exportDir = exportRoot
	}
}
