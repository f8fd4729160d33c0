// Package store persists site content and admin accounts in SQLite.
// File: store/store.go
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"zeroun-site/models"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// siteContentID is the primary key of the one-and-only site content row.
const siteContentID = "site_content_singleton"

// Store wraps the SQLite handle. All ids are assigned here, never by callers.
type Store struct {
	db *sql.DB
}

// Open opens (and creates, if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			date TEXT NOT NULL,
			location TEXT NOT NULL,
			description TEXT NOT NULL,
			image_url TEXT NOT NULL,
			featured INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS team_members (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			bio TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS gallery_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS videos (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			video_url TEXT NOT NULL,
			thumbnail_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS site_content (
			id TEXT PRIMARY KEY,
			hero_title TEXT NOT NULL DEFAULT '',
			hero_subtitle TEXT NOT NULL DEFAULT '',
			hero_primary_cta TEXT NOT NULL DEFAULT '',
			hero_secondary_cta TEXT NOT NULL DEFAULT '',
			community_title TEXT NOT NULL DEFAULT '',
			community_description TEXT NOT NULL DEFAULT '',
			community_cta TEXT NOT NULL DEFAULT '',
			about_title TEXT NOT NULL DEFAULT '',
			about_description TEXT NOT NULL DEFAULT '',
			contact_email TEXT NOT NULL DEFAULT '',
			contact_phone TEXT NOT NULL DEFAULT '',
			contact_address TEXT NOT NULL DEFAULT '',
			footer_tagline TEXT NOT NULL DEFAULT '',
			features TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS admin_users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			hashed_password TEXT NOT NULL,
			reset_token TEXT NOT NULL DEFAULT '',
			reset_expires TIMESTAMP,
			created_at TIMESTAMP NOT NULL
		);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// -------------------- events --------------------

// ListEvents returns all events, newest first.
func (s *Store) ListEvents() ([]models.Event, error) {
	rows, err := s.db.Query(`SELECT id, title, date, location, description, image_url, featured, created_at
		FROM events ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Location, &e.Description, &e.ImageURL, &e.Featured, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent returns a single event by id.
func (s *Store) GetEvent(id string) (models.Event, error) {
	var e models.Event
	err := s.db.QueryRow(`SELECT id, title, date, location, description, image_url, featured, created_at
		FROM events WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Date, &e.Location, &e.Description, &e.ImageURL, &e.Featured, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrNotFound
	}
	return e, err
}

// CreateEvent inserts a new event and assigns its id.
func (s *Store) CreateEvent(in models.EventCreate) (models.Event, error) {
	e := models.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Date:        in.Date,
		Location:    in.Location,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Featured:    in.Featured,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.Exec(`INSERT INTO events (id, title, date, location, description, image_url, featured, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Date, e.Location, e.Description, e.ImageURL, e.Featured, e.CreatedAt)
	return e, err
}

// UpdateEvent applies the non-nil fields of upd and returns the updated row.
func (s *Store) UpdateEvent(id string, upd models.EventUpdate) (models.Event, error) {
	sets, args := []string{}, []interface{}{}
	appendSet(&sets, &args, "title", upd.Title)
	appendSet(&sets, &args, "date", upd.Date)
	appendSet(&sets, &args, "location", upd.Location)
	appendSet(&sets, &args, "description", upd.Description)
	appendSet(&sets, &args, "image_url", upd.ImageURL)
	if upd.Featured != nil {
		sets = append(sets, "featured = ?")
		args = append(args, *upd.Featured)
	}
	if err := s.applyUpdate("events", id, sets, args); err != nil {
		return models.Event{}, err
	}
	return s.GetEvent(id)
}

// DeleteEvent removes an event; ErrNotFound if no such row.
func (s *Store) DeleteEvent(id string) error {
	return s.deleteRow("events", id)
}

// -------------------- team members --------------------

// ListTeamMembers returns all crew members, newest first.
func (s *Store) ListTeamMembers() ([]models.TeamMember, error) {
	rows, err := s.db.Query(`SELECT id, name, role, bio, image_url, created_at
		FROM team_members ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.ImageURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetTeamMember returns a single crew member by id.
func (s *Store) GetTeamMember(id string) (models.TeamMember, error) {
	var m models.TeamMember
	err := s.db.QueryRow(`SELECT id, name, role, bio, image_url, created_at
		FROM team_members WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.ImageURL, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TeamMember{}, ErrNotFound
	}
	return m, err
}

// CreateTeamMember inserts a new crew member and assigns its id.
func (s *Store) CreateTeamMember(in models.TeamMemberCreate) (models.TeamMember, error) {
	m := models.TeamMember{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Role:      in.Role,
		Bio:       in.Bio,
		ImageURL:  in.ImageURL,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(`INSERT INTO team_members (id, name, role, bio, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Role, m.Bio, m.ImageURL, m.CreatedAt)
	return m, err
}

// UpdateTeamMember applies the non-nil fields of upd and returns the updated row.
func (s *Store) UpdateTeamMember(id string, upd models.TeamMemberUpdate) (models.TeamMember, error) {
	sets, args := []string{}, []interface{}{}
	appendSet(&sets, &args, "name", upd.Name)
	appendSet(&sets, &args, "role", upd.Role)
	appendSet(&sets, &args, "bio", upd.Bio)
	appendSet(&sets, &args, "image_url", upd.ImageURL)
	if err := s.applyUpdate("team_members", id, sets, args); err != nil {
		return models.TeamMember{}, err
	}
	return s.GetTeamMember(id)
}

// DeleteTeamMember removes a crew member; ErrNotFound if no such row.
func (s *Store) DeleteTeamMember(id string) error {
	return s.deleteRow("team_members", id)
}

// -------------------- gallery --------------------

// ListGalleryItems returns all gallery images, newest first.
func (s *Store) ListGalleryItems() ([]models.GalleryItem, error) {
	rows, err := s.db.Query(`SELECT id, title, description, image_url, created_at
		FROM gallery_items ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.GalleryItem{}
	for rows.Next() {
		var g models.GalleryItem
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.ImageURL, &g.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// GetGalleryItem returns a single gallery image by id.
func (s *Store) GetGalleryItem(id string) (models.GalleryItem, error) {
	var g models.GalleryItem
	err := s.db.QueryRow(`SELECT id, title, description, image_url, created_at
		FROM gallery_items WHERE id = ?`, id).
		Scan(&g.ID, &g.Title, &g.Description, &g.ImageURL, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GalleryItem{}, ErrNotFound
	}
	return g, err
}

// CreateGalleryItem inserts a new gallery image and assigns its id.
func (s *Store) CreateGalleryItem(in models.GalleryItemCreate) (models.GalleryItem, error) {
	g := models.GalleryItem{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.Exec(`INSERT INTO gallery_items (id, title, description, image_url, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Title, g.Description, g.ImageURL, g.CreatedAt)
	return g, err
}

// UpdateGalleryItem applies the non-nil fields of upd and returns the updated row.
func (s *Store) UpdateGalleryItem(id string, upd models.GalleryItemUpdate) (models.GalleryItem, error) {
	sets, args := []string{}, []interface{}{}
	appendSet(&sets, &args, "title", upd.Title)
	appendSet(&sets, &args, "description", upd.Description)
	appendSet(&sets, &args, "image_url", upd.ImageURL)
	if err := s.applyUpdate("gallery_items", id, sets, args); err != nil {
		return models.GalleryItem{}, err
	}
	return s.GetGalleryItem(id)
}

// DeleteGalleryItem removes a gallery image; ErrNotFound if no such row.
func (s *Store) DeleteGalleryItem(id string) error {
	return s.deleteRow("gallery_items", id)
}

// -------------------- videos --------------------

// ListVideos returns all videos, newest first.
func (s *Store) ListVideos() ([]models.Video, error) {
	rows, err := s.db.Query(`SELECT id, title, description, video_url, thumbnail_url, created_at
		FROM videos ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL, &v.CreatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// GetVideo returns a single video by id.
func (s *Store) GetVideo(id string) (models.Video, error) {
	var v models.Video
	err := s.db.QueryRow(`SELECT id, title, description, video_url, thumbnail_url, created_at
		FROM videos WHERE id = ?`, id).
		Scan(&v.ID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Video{}, ErrNotFound
	}
	return v, err
}

// CreateVideo inserts a new video and assigns its id.
func (s *Store) CreateVideo(in models.VideoCreate) (models.Video, error) {
	v := models.Video{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		VideoURL:     in.VideoURL,
		ThumbnailURL: in.ThumbnailURL,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.Exec(`INSERT INTO videos (id, title, description, video_url, thumbnail_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.CreatedAt)
	return v, err
}

// UpdateVideo applies the non-nil fields of upd and returns the updated row.
func (s *Store) UpdateVideo(id string, upd models.VideoUpdate) (models.Video, error) {
	sets, args := []string{}, []interface{}{}
	appendSet(&sets, &args, "title", upd.Title)
	appendSet(&sets, &args, "description", upd.Description)
	appendSet(&sets, &args, "video_url", upd.VideoURL)
	appendSet(&sets, &args, "thumbnail_url", upd.ThumbnailURL)
	if err := s.applyUpdate("videos", id, sets, args); err != nil {
		return models.Video{}, err
	}
	return s.GetVideo(id)
}

// DeleteVideo removes a video; ErrNotFound if no such row.
func (s *Store) DeleteVideo(id string) error {
	return s.deleteRow("videos", id)
}

// -------------------- site content --------------------

// GetSiteContent returns the singleton site content document.
func (s *Store) GetSiteContent() (models.SiteContent, error) {
	var c models.SiteContent
	var features string
	err := s.db.QueryRow(`SELECT id, hero_title, hero_subtitle, hero_primary_cta, hero_secondary_cta,
		community_title, community_description, community_cta, about_title, about_description,
		contact_email, contact_phone, contact_address, footer_tagline, features
		FROM site_content WHERE id = ?`, siteContentID).
		Scan(&c.ID, &c.HeroTitle, &c.HeroSubtitle, &c.HeroPrimaryCTA, &c.HeroSecondaryCTA,
			&c.CommunityTitle, &c.CommunityDescription, &c.CommunityCTA, &c.AboutTitle, &c.AboutDescription,
			&c.ContactEmail, &c.ContactPhone, &c.ContactAddress, &c.FooterTagline, &features)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SiteContent{}, ErrNotFound
	}
	if err != nil {
		return models.SiteContent{}, err
	}
	if err := json.Unmarshal([]byte(features), &c.Features); err != nil {
		return models.SiteContent{}, fmt.Errorf("decode features: %w", err)
	}
	return c, nil
}

// UpdateSiteContent applies the non-nil fields of upd to the singleton row
// and returns the updated document.
func (s *Store) UpdateSiteContent(upd models.SiteContentUpdate) (models.SiteContent, error) {
	sets, args := []string{}, []interface{}{}
	appendSet(&sets, &args, "hero_title", upd.HeroTitle)
	appendSet(&sets, &args, "hero_subtitle", upd.HeroSubtitle)
	appendSet(&sets, &args, "hero_primary_cta", upd.HeroPrimaryCTA)
	appendSet(&sets, &args, "hero_secondary_cta", upd.HeroSecondaryCTA)
	appendSet(&sets, &args, "community_title", upd.CommunityTitle)
	appendSet(&sets, &args, "community_description", upd.CommunityDescription)
	appendSet(&sets, &args, "community_cta", upd.CommunityCTA)
	appendSet(&sets, &args, "about_title", upd.AboutTitle)
	appendSet(&sets, &args, "about_description", upd.AboutDescription)
	appendSet(&sets, &args, "contact_email", upd.ContactEmail)
	appendSet(&sets, &args, "contact_phone", upd.ContactPhone)
	appendSet(&sets, &args, "contact_address", upd.ContactAddress)
	appendSet(&sets, &args, "footer_tagline", upd.FooterTagline)
	if upd.Features != nil {
		encoded, err := json.Marshal(*upd.Features)
		if err != nil {
			return models.SiteContent{}, fmt.Errorf("encode features: %w", err)
		}
		sets = append(sets, "features = ?")
		args = append(args, string(encoded))
	}
	if err := s.applyUpdate("site_content", siteContentID, sets, args); err != nil {
		return models.SiteContent{}, err
	}
	return s.GetSiteContent()
}

// -------------------- admin users --------------------

// GetAdminByUsername looks up an admin account by username.
func (s *Store) GetAdminByUsername(username string) (models.AdminUser, error) {
	return s.getAdmin("username = ?", username)
}

// GetAdminByEmail looks up an admin account by email.
func (s *Store) GetAdminByEmail(email string) (models.AdminUser, error) {
	return s.getAdmin("email = ?", email)
}

// GetAdminByResetToken looks up an admin account by its pending reset token.
func (s *Store) GetAdminByResetToken(token string) (models.AdminUser, error) {
	return s.getAdmin("reset_token = ? AND reset_token != ''", token)
}

func (s *Store) getAdmin(where string, arg interface{}) (models.AdminUser, error) {
	var a models.AdminUser
	var resetExpires sql.NullTime
	err := s.db.QueryRow(`SELECT id, username, email, hashed_password, reset_token, reset_expires, created_at
		FROM admin_users WHERE `+where, arg). // #nosec G202 -- where is a fixed literal
		Scan(&a.ID, &a.Username, &a.Email, &a.HashedPassword, &a.ResetToken, &resetExpires, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AdminUser{}, ErrNotFound
	}
	if resetExpires.Valid {
		a.ResetExpires = resetExpires.Time
	}
	return a, err
}

// CreateAdmin inserts a new admin account with an already-hashed password.
func (s *Store) CreateAdmin(username, email, hashedPassword string) (models.AdminUser, error) {
	a := models.AdminUser{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}
	_, err := s.db.Exec(`INSERT INTO admin_users (id, username, email, hashed_password, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.Email, a.HashedPassword, a.CreatedAt)
	return a, err
}

// UpdateAdminAccount changes username and/or email; empty strings are skipped.
// Reports whether anything was modified.
func (s *Store) UpdateAdminAccount(username string, upd models.AdminUpdate) (bool, error) {
	sets, args := []string{}, []interface{}{}
	if upd.Username != "" {
		sets = append(sets, "username = ?")
		args = append(args, upd.Username)
	}
	if upd.Email != "" {
		sets = append(sets, "email = ?")
		args = append(args, upd.Email)
	}
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, username)
	res, err := s.db.Exec("UPDATE admin_users SET "+strings.Join(sets, ", ")+" WHERE username = ?", args...) // #nosec G202
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetAdminPassword replaces the stored password hash for a username.
func (s *Store) SetAdminPassword(username, hashedPassword string) error {
	res, err := s.db.Exec(`UPDATE admin_users SET hashed_password = ? WHERE username = ?`, hashedPassword, username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// SetResetToken stores a password reset token and its expiry for an email.
func (s *Store) SetResetToken(email, token string, expires time.Time) error {
	_, err := s.db.Exec(`UPDATE admin_users SET reset_token = ?, reset_expires = ? WHERE email = ?`,
		token, expires, email)
	return err
}

// ConsumeResetToken replaces the password of the account holding the token
// and clears the token so it cannot be replayed.
func (s *Store) ConsumeResetToken(token, hashedPassword string) error {
	res, err := s.db.Exec(`UPDATE admin_users
		SET hashed_password = ?, reset_token = '', reset_expires = NULL
		WHERE reset_token = ? AND reset_token != ''`, hashedPassword, token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// -------------------- helpers --------------------

// appendSet adds a "col = ?" clause when the value is non-nil.
func appendSet(sets *[]string, args *[]interface{}, col string, val *string) {
	if val != nil {
		*sets = append(*sets, col+" = ?")
		*args = append(*args, *val)
	}
}

// applyUpdate runs a dynamic UPDATE; a no-op update still verifies existence.
func (s *Store) applyUpdate(table, id string, sets []string, args []interface{}) error {
	if len(sets) == 0 {
		var exists int
		err := s.db.QueryRow("SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&exists) // #nosec G202 -- table is a fixed literal
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	args = append(args, id)
	res, err := s.db.Exec("UPDATE "+table+" SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...) // #nosec G202
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

func (s *Store) deleteRow(table, id string) error {
	res, err := s.db.Exec("DELETE FROM "+table+" WHERE id = ?", id) // #nosec G202 -- table is a fixed literal
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
