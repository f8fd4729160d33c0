// Package models defines data structures used across the application.
// File: models/content.go
package models

import "time"

// ----------------------- event model -----------------------

// Event represents a crew event shown on the public site.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // free-text ("12 Déc 2025", "En continu - 2025/2026")
	Location    string    `json:"location"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventCreate is the payload for creating an event.
type EventCreate struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Featured    bool   `json:"featured"`
}

// EventUpdate is a partial update; nil fields are left unchanged.
type EventUpdate struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Featured    *bool   `json:"featured"`
}

// ----------------------- team model -----------------------

// TeamMember represents a crew member.
type TeamMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// TeamMemberCreate is the payload for adding a crew member.
type TeamMemberCreate struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

// TeamMemberUpdate is a partial update; nil fields are left unchanged.
type TeamMemberUpdate struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"imageUrl"`
}

// ----------------------- gallery model -----------------------

// GalleryItem represents one image of the photo gallery.
type GalleryItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GalleryItemCreate is the payload for adding a gallery image.
type GalleryItemCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" binding:"required"`
}

// GalleryItemUpdate is a partial update; nil fields are left unchanged.
type GalleryItemUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// ----------------------- video model -----------------------

// Video represents a video shown on the public site.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VideoCreate is the payload for adding a video.
type VideoCreate struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	VideoURL     string `json:"videoUrl" binding:"required"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// VideoUpdate is a partial update; nil fields are left unchanged.
type VideoUpdate struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	VideoURL     *string `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

// ----------------------- site content model -----------------------

// Feature is one entry of the fixed feature list on the home page.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"` // icon tag ("users", "calendar", "image")
}

// SiteContent is the single mutable copy document for the whole site.
// It is not a collection: there is exactly one row, replaced field by field.
type SiteContent struct {
	ID                   string    `json:"id"`
	HeroTitle            string    `json:"heroTitle"`
	HeroSubtitle         string    `json:"heroSubtitle"`
	HeroPrimaryCTA       string    `json:"heroPrimaryCTA"`
	HeroSecondaryCTA     string    `json:"heroSecondaryCTA"`
	CommunityTitle       string    `json:"communityTitle"`
	CommunityDescription string    `json:"communityDescription"`
	CommunityCTA         string    `json:"communityCTA"`
	AboutTitle           string    `json:"aboutTitle,omitempty"`
	AboutDescription     string    `json:"aboutDescription,omitempty"`
	ContactEmail         string    `json:"contactEmail,omitempty"`
	ContactPhone         string    `json:"contactPhone,omitempty"`
	ContactAddress       string    `json:"contactAddress,omitempty"`
	FooterTagline        string    `json:"footerTagline,omitempty"`
	Features             []Feature `json:"features"`
}

// SiteContentUpdate is a partial update; nil fields are left unchanged.
type SiteContentUpdate struct {
	HeroTitle            *string    `json:"heroTitle"`
	HeroSubtitle         *string    `json:"heroSubtitle"`
	HeroPrimaryCTA       *string    `json:"heroPrimaryCTA"`
	HeroSecondaryCTA     *string    `json:"heroSecondaryCTA"`
	CommunityTitle       *string    `json:"communityTitle"`
	CommunityDescription *string    `json:"communityDescription"`
	CommunityCTA         *string    `json:"communityCTA"`
	AboutTitle           *string    `json:"aboutTitle"`
	AboutDescription     *string    `json:"aboutDescription"`
	ContactEmail         *string    `json:"contactEmail"`
	ContactPhone         *string    `json:"contactPhone"`
	ContactAddress       *string    `json:"contactAddress"`
	FooterTagline        *string    `json:"footerTagline"`
	Features             *[]Feature `json:"features"`
}
