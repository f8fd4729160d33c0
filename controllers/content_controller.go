// Package controllers handles the public content resources and their admin CRUD.
// File: controllers/content_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zeroun-site/logger"
	"zeroun-site/models"
	"zeroun-site/services"
	"zeroun-site/store"
	"zeroun-site/websocket"
)

// ------------------ shared helpers ------------------

// respondStoreError maps a storage failure onto the wire: 404 for a missing
// row, 500 for anything else.
func respondStoreError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": notFoundMsg})
		return
	}
	logger.Error.Printf("[%s %s] storage error: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}

// ------------------ events ------------------

// ListEvents returns all events, newest first. Public.
func ListEvents(c *gin.Context) {
	events, err := contentStore.ListEvents()
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateEvent creates a new event. Admin only.
func CreateEvent(c *gin.Context) {
	var in models.EventCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	event, err := contentStore.CreateEvent(in)
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	websocket.Notify("events")
	c.JSON(http.StatusOK, event)
}

// UpdateEvent partially updates an event. Admin only.
func UpdateEvent(c *gin.Context) {
	var upd models.EventUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	event, err := contentStore.UpdateEvent(c.Param("id"), upd)
	if err != nil {
		respondStoreError(c, err, "Event not found")
		return
	}
	websocket.Notify("events")
	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event. Admin only.
func DeleteEvent(c *gin.Context) {
	if err := contentStore.DeleteEvent(c.Param("id")); err != nil {
		respondStoreError(c, err, "Event not found")
		return
	}
	websocket.Notify("events")
	c.JSON(http.StatusOK, gin.H{"message": "Événement supprimé avec succès"})
}

// EventQRCode serves a QR code PNG linking to the event's public page.
func EventQRCode(c *gin.Context) {
	event, err := contentStore.GetEvent(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Event not found")
		return
	}
	png, err := services.GenerateEventQRCode(event.ID, 256)
	if err != nil {
		logger.Error.Printf("[EventQRCode] generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ------------------ team ------------------

// ListTeam returns all crew members, newest first. Public.
func ListTeam(c *gin.Context) {
	members, err := contentStore.ListTeamMembers()
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, members)
}

// CreateTeamMember adds a crew member. Admin only.
func CreateTeamMember(c *gin.Context) {
	var in models.TeamMemberCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	member, err := contentStore.CreateTeamMember(in)
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	websocket.Notify("team")
	c.JSON(http.StatusOK, member)
}

// UpdateTeamMember partially updates a crew member. Admin only.
func UpdateTeamMember(c *gin.Context) {
	var upd models.TeamMemberUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	member, err := contentStore.UpdateTeamMember(c.Param("id"), upd)
	if err != nil {
		respondStoreError(c, err, "Team member not found")
		return
	}
	websocket.Notify("team")
	c.JSON(http.StatusOK, member)
}

// DeleteTeamMember removes a crew member. Admin only.
func DeleteTeamMember(c *gin.Context) {
	if err := contentStore.DeleteTeamMember(c.Param("id")); err != nil {
		respondStoreError(c, err, "Team member not found")
		return
	}
	websocket.Notify("team")
	c.JSON(http.StatusOK, gin.H{"message": "Membre supprimé avec succès"})
}

// ------------------ gallery ------------------

// ListGallery returns all gallery images, newest first. Public.
func ListGallery(c *gin.Context) {
	items, err := contentStore.ListGalleryItems()
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateGalleryItem adds a gallery image. Admin only.
func CreateGalleryItem(c *gin.Context) {
	var in models.GalleryItemCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	item, err := contentStore.CreateGalleryItem(in)
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	websocket.Notify("gallery")
	c.JSON(http.StatusOK, item)
}

// UpdateGalleryItem partially updates a gallery image. Admin only.
func UpdateGalleryItem(c *gin.Context) {
	var upd models.GalleryItemUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	item, err := contentStore.UpdateGalleryItem(c.Param("id"), upd)
	if err != nil {
		respondStoreError(c, err, "Gallery item not found")
		return
	}
	websocket.Notify("gallery")
	c.JSON(http.StatusOK, item)
}

// DeleteGalleryItem removes a gallery image. Admin only.
func DeleteGalleryItem(c *gin.Context) {
	if err := contentStore.DeleteGalleryItem(c.Param("id")); err != nil {
		respondStoreError(c, err, "Gallery item not found")
		return
	}
	websocket.Notify("gallery")
	c.JSON(http.StatusOK, gin.H{"message": "Image supprimée avec succès"})
}

// ------------------ videos ------------------

// ListVideos returns all videos, newest first. Public.
func ListVideos(c *gin.Context) {
	videos, err := contentStore.ListVideos()
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, videos)
}

// CreateVideo adds a video. Admin only.
func CreateVideo(c *gin.Context) {
	var in models.VideoCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	video, err := contentStore.CreateVideo(in)
	if err != nil {
		respondStoreError(c, err, "")
		return
	}
	websocket.Notify("videos")
	c.JSON(http.StatusOK, video)
}

// UpdateVideo partially updates a video. Admin only.
func UpdateVideo(c *gin.Context) {
	var upd models.VideoUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	video, err := contentStore.UpdateVideo(c.Param("id"), upd)
	if err != nil {
		respondStoreError(c, err, "Video not found")
		return
	}
	websocket.Notify("videos")
	c.JSON(http.StatusOK, video)
}

// DeleteVideo removes a video. Admin only.
func DeleteVideo(c *gin.Context) {
	if err := contentStore.DeleteVideo(c.Param("id")); err != nil {
		respondStoreError(c, err, "Video not found")
		return
	}
	websocket.Notify("videos")
	c.JSON(http.StatusOK, gin.H{"message": "Vidéo supprimée avec succès"})
}

// ------------------ site content ------------------

// GetSiteContent returns the singleton copy document. Public.
func GetSiteContent(c *gin.Context) {
	content, err := contentStore.GetSiteContent()
	if err != nil {
		respondStoreError(c, err, "Site content not found")
		return
	}
	c.JSON(http.StatusOK, content)
}

// UpdateSiteContent partially updates the singleton copy document. Admin only.
func UpdateSiteContent(c *gin.Context) {
	var upd models.SiteContentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	content, err := contentStore.UpdateSiteContent(upd)
	if err != nil {
		respondStoreError(c, err, "Site content not found")
		return
	}
	websocket.Notify("content")
	c.JSON(http.StatusOK, content)
}
