// Package store - store/seed.go
// First-start seeding: on an empty database the site still has to render
// something, and the back-office needs a working admin account.
package store

import (
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"zeroun-site/logger"
	"zeroun-site/models"
)

// defaults for the admin account created on an empty database
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "zeroundprod@gmail.com"
	defaultAdminPassword = "admin123" // #nosec G101 -- published first-run default, changed via the back-office
)

// Seed populates empty tables with the default site data. Tables that already
// hold rows are left alone, so Seed is safe to call on every start.
func (s *Store) Seed() error {
	if err := s.seedSiteContent(); err != nil {
		return err
	}
	if err := s.seedAdmin(); err != nil {
		return err
	}
	if err := s.seedEvents(); err != nil {
		return err
	}
	if err := s.seedTeam(); err != nil {
		return err
	}
	if err := s.seedGallery(); err != nil {
		return err
	}
	return s.seedVideos()
}

func (s *Store) seedSiteContent() error {
	if _, err := s.GetSiteContent(); !errors.Is(err, ErrNotFound) {
		return err
	}
	features, err := json.Marshal([]models.Feature{
		{
			Title:       "Danse Urbaine & Breakdance",
			Description: "Hip-hop, breakdance, freestyle. Plus de 120 ateliers organisés pour les jeunes de 7 à 18 ans",
			Icon:        "users",
		},
		{
			Title:       "Événements & Spectacles",
			Description: "Plus de 30 représentations artistiques par an. Battles, expositions et créations originales",
			Icon:        "calendar",
		},
		{
			Title:       "Cultures Urbaines",
			Description: "Slam, rap, graffiti, beatmaking, DJing et freestyle football. Toutes les disciplines urbaines réunies",
			Icon:        "image",
		},
	})
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO site_content (id, hero_title, hero_subtitle, hero_primary_cta, hero_secondary_cta,
		community_title, community_description, community_cta, about_title, about_description,
		contact_email, contact_phone, contact_address, footer_tagline, features)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		siteContentID,
		"ZERO UN PRODUCTION",
		"Cultures Urbaines – Événements – Expositions",
		"Découvrir nos événements",
		"Voir les vidéos",
		"Rejoignez Le Mouvement",
		"Basés dans l'Ain (01), nous intervenons dans toute la région Auvergne-Rhône-Alpes. Ateliers, battles, spectacles et expositions pour tous les âges et tous les niveaux. Rejoignez la communauté Zero Un Production !",
		"Contactez-nous",
		"À Propos de Nous",
		"Fondé avec la passion des cultures urbaines, Zero Un Production rassemble des artistes de tous horizons unis par l'amour du mouvement et de l'expression artistique.",
		DefaultAdminEmail,
		"",
		"Ain, France",
		"Cultures Urbaines – Événements – Expositions",
		string(features))
	if err == nil {
		logger.Info.Println("[Seed] Default site content created")
	}
	return err
}

func (s *Store) seedAdmin() error {
	if _, err := s.GetAdminByUsername(DefaultAdminUsername); !errors.Is(err, ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.CreateAdmin(DefaultAdminUsername, DefaultAdminEmail, string(hash)); err != nil {
		return err
	}
	logger.Warn.Printf("[Seed] Default admin created (username=%s) - change the password", DefaultAdminUsername)
	return nil
}

func (s *Store) seedEvents() error {
	n, err := s.countRows("events")
	if err != nil || n > 0 {
		return err
	}
	now := time.Now().UTC()
	events := []models.Event{
		{
			ID:          "event-1",
			Title:       "Exposition Vibrations Urbaines 2025",
			Date:        "10 Déc 2025 - 20 Jan 2026",
			Location:    "Bourg-en-Bresse, Ain (01)",
			Description: "Une exposition retraçant le processus créatif du projet Vibrations Urbaines, ainsi que les ateliers proposés aux habitants de Bourg-en-Bresse. Découvrez l'univers des cultures urbaines à travers photos, vidéos et installations.",
			ImageURL:    "/static/images/expo-vibrations.jpeg",
			Featured:    true,
			CreatedAt:   now,
		},
		{
			ID:          "event-2",
			Title:       "Battle des Élèves",
			Date:        "12 Déc 2025",
			Location:    "Salle de l'Alagnier, Bourg-en-Bresse",
			Description: "Breaking 3vs3 Junior & All Style 1vs1. Un événement gratuit organisé par Zero Un Production pour les jeunes talents. Venez encourager les futurs champions ! Horaires: 18h30 - 20h30",
			ImageURL:    "/static/images/battle-eleves.jpeg",
			Featured:    true,
			CreatedAt:   now,
		},
		{
			ID:          "event-3",
			Title:       "Ateliers Cultures Urbaines",
			Date:        "En continu - 2025/2026",
			Location:    "Département de l'Ain (01)",
			Description: "Ateliers hebdomadaires de danse urbaine, breakdance, slam, graffiti et beatmaking pour jeunes de 7 à 18 ans. Plus de 120 ateliers organisés dans tout le département.",
			ImageURL:    "/static/images/ateliers.jpeg",
			CreatedAt:   now,
		},
	}
	for _, e := range events {
		if _, err := s.db.Exec(`INSERT INTO events (id, title, date, location, description, image_url, featured, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Title, e.Date, e.Location, e.Description, e.ImageURL, e.Featured, e.CreatedAt); err != nil {
			return err
		}
	}
	logger.Info.Println("[Seed] Default events created")
	return nil
}

func (s *Store) seedTeam() error {
	n, err := s.countRows("team_members")
	if err != nil || n > 0 {
		return err
	}
	now := time.Now().UTC()
	members := []models.TeamMember{
		{
			ID:        "team-1",
			Name:      "B-Boy Master",
			Role:      "Danseur Principal / Instructeur",
			Bio:       "Passionné de breakdance depuis plus de 10 ans",
			ImageURL:  "/static/images/team-master.jpeg",
			CreatedAt: now,
		},
		{
			ID:        "team-2",
			Name:      "B-Boy Artist",
			Role:      "Chorégraphe / Performer",
			Bio:       "Expert en freestyle et battles",
			ImageURL:  "/static/images/team-artist.jpeg",
			CreatedAt: now,
		},
	}
	for _, m := range members {
		if _, err := s.db.Exec(`INSERT INTO team_members (id, name, role, bio, image_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Role, m.Bio, m.ImageURL, m.CreatedAt); err != nil {
			return err
		}
	}
	logger.Info.Println("[Seed] Default team members created")
	return nil
}

func (s *Store) seedGallery() error {
	n, err := s.countRows("gallery_items")
	if err != nil || n > 0 {
		return err
	}
	now := time.Now().UTC()
	items := []models.GalleryItem{
		{ID: "gallery-1", Title: "Session Training", Description: "Entraînement intensif du crew", ImageURL: "/static/images/gallery-training.jpeg", CreatedAt: now},
		{ID: "gallery-2", Title: "Performance Urbaine", Description: "Show dans les rues", ImageURL: "/static/images/gallery-perf.jpeg", CreatedAt: now},
		{ID: "gallery-3", Title: "Vibrations Urbaines", Description: "Exposition culturelle", ImageURL: "/static/images/gallery-expo.jpeg", CreatedAt: now},
	}
	for _, g := range items {
		if _, err := s.db.Exec(`INSERT INTO gallery_items (id, title, description, image_url, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			g.ID, g.Title, g.Description, g.ImageURL, g.CreatedAt); err != nil {
			return err
		}
	}
	logger.Info.Println("[Seed] Default gallery items created")
	return nil
}

func (s *Store) seedVideos() error {
	n, err := s.countRows("videos")
	if err != nil || n > 0 {
		return err
	}
	now := time.Now().UTC()
	videos := []models.Video{
		{
			ID:           "video-1",
			Title:        "Breakdance Crew - Session d'Accueil",
			Description:  "Découvrez notre crew en action lors d'une session d'entraînement",
			VideoURL:     "/static/videos/session-accueil.mp4",
			ThumbnailURL: "/static/images/team-master.jpeg",
			CreatedAt:    now,
		},
		{
			ID:           "video-2",
			Title:        "Démonstration Battle",
			Description:  "Nos meilleurs moves en compétition",
			VideoURL:     "/static/videos/demo-battle.mp4",
			ThumbnailURL: "/static/images/team-artist.jpeg",
			CreatedAt:    now,
		},
	}
	for _, v := range videos {
		if _, err := s.db.Exec(`INSERT INTO videos (id, title, description, video_url, thumbnail_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			v.ID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.CreatedAt); err != nil {
			return err
		}
	}
	logger.Info.Println("[Seed] Default videos created")
	return nil
}

func (s *Store) countRows(table string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n) // #nosec G202 -- table is a fixed literal
	return n, err
}
