// Package client - client/client.go
// The API gateway client: one method per resource operation. The bearer token
// is read from the TokenStore at call time, so a login or logout takes effect
// on the very next call. Failures are never retried or swallowed here.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"zeroun-site/models"
)

// APIError carries a non-2xx response back to the caller.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the REST surface under <baseURL>/api.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// New creates a Client for the server at baseURL (scheme + host, no /api
// suffix) using the given token store.
func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
	}
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Tokens returns the client's token store.
func (c *Client) Tokens() TokenStore { return c.tokens }

// do issues one JSON request. A non-nil body is JSON-encoded; a non-nil out
// receives the decoded response body.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+"/api"+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachToken(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// attachToken adds the Authorization header when a token is stored, and
// leaves the request untouched otherwise.
func (c *Client) attachToken(req *http.Request) {
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// decodeAPIError turns an error response into an *APIError, preferring the
// server's own message.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		apiErr.Message = body.Detail
	}
	return apiErr
}

// ------------------ events ------------------

// Events lists all events, newest first.
func (c *Client) Events() ([]models.Event, error) {
	var events []models.Event
	err := c.do(http.MethodGet, "/events", nil, &events)
	return events, err
}

// CreateEvent creates an event.
func (c *Client) CreateEvent(in models.EventCreate) (models.Event, error) {
	var event models.Event
	err := c.do(http.MethodPost, "/events", in, &event)
	return event, err
}

// UpdateEvent partially updates an event.
func (c *Client) UpdateEvent(id string, upd models.EventUpdate) (models.Event, error) {
	var event models.Event
	err := c.do(http.MethodPut, "/events/"+url.PathEscape(id), upd, &event)
	return event, err
}

// DeleteEvent deletes an event.
func (c *Client) DeleteEvent(id string) error {
	return c.do(http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

// ------------------ team ------------------

// TeamMembers lists all crew members, newest first.
func (c *Client) TeamMembers() ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := c.do(http.MethodGet, "/team", nil, &members)
	return members, err
}

// CreateTeamMember adds a crew member.
func (c *Client) CreateTeamMember(in models.TeamMemberCreate) (models.TeamMember, error) {
	var member models.TeamMember
	err := c.do(http.MethodPost, "/team", in, &member)
	return member, err
}

// UpdateTeamMember partially updates a crew member.
func (c *Client) UpdateTeamMember(id string, upd models.TeamMemberUpdate) (models.TeamMember, error) {
	var member models.TeamMember
	err := c.do(http.MethodPut, "/team/"+url.PathEscape(id), upd, &member)
	return member, err
}

// DeleteTeamMember removes a crew member.
func (c *Client) DeleteTeamMember(id string) error {
	return c.do(http.MethodDelete, "/team/"+url.PathEscape(id), nil, nil)
}

// ------------------ gallery ------------------

// GalleryItems lists all gallery images, newest first.
func (c *Client) GalleryItems() ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	err := c.do(http.MethodGet, "/gallery", nil, &items)
	return items, err
}

// CreateGalleryItem adds a gallery image.
func (c *Client) CreateGalleryItem(in models.GalleryItemCreate) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := c.do(http.MethodPost, "/gallery", in, &item)
	return item, err
}

// UpdateGalleryItem partially updates a gallery image.
func (c *Client) UpdateGalleryItem(id string, upd models.GalleryItemUpdate) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := c.do(http.MethodPut, "/gallery/"+url.PathEscape(id), upd, &item)
	return item, err
}

// DeleteGalleryItem removes a gallery image.
func (c *Client) DeleteGalleryItem(id string) error {
	return c.do(http.MethodDelete, "/gallery/"+url.PathEscape(id), nil, nil)
}

// ------------------ videos ------------------

// Videos lists all videos, newest first.
func (c *Client) Videos() ([]models.Video, error) {
	var videos []models.Video
	err := c.do(http.MethodGet, "/videos", nil, &videos)
	return videos, err
}

// CreateVideo adds a video.
func (c *Client) CreateVideo(in models.VideoCreate) (models.Video, error) {
	var video models.Video
	err := c.do(http.MethodPost, "/videos", in, &video)
	return video, err
}

// UpdateVideo partially updates a video.
func (c *Client) UpdateVideo(id string, upd models.VideoUpdate) (models.Video, error) {
	var video models.Video
	err := c.do(http.MethodPut, "/videos/"+url.PathEscape(id), upd, &video)
	return video, err
}

// DeleteVideo removes a video.
func (c *Client) DeleteVideo(id string) error {
	return c.do(http.MethodDelete, "/videos/"+url.PathEscape(id), nil, nil)
}

// ------------------ site content ------------------

// SiteContent fetches the singleton copy document.
func (c *Client) SiteContent() (models.SiteContent, error) {
	var content models.SiteContent
	err := c.do(http.MethodGet, "/site-content", nil, &content)
	return content, err
}

// UpdateSiteContent partially updates the singleton copy document.
func (c *Client) UpdateSiteContent(upd models.SiteContentUpdate) (models.SiteContent, error) {
	var content models.SiteContent
	err := c.do(http.MethodPut, "/site-content", upd, &content)
	return content, err
}

// ------------------ admin ------------------

// Login exchanges credentials for a bearer token. This is the one
// form-encoded call on the API; the token is returned, not stored — storing
// it is the session's decision.
func (c *Client) Login(username, password string) (models.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/admin/login", strings.NewReader(form.Encode()))
	if err != nil {
		return models.Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Token{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Token{}, decodeAPIError(resp)
	}
	var token models.Token
	err = json.NewDecoder(resp.Body).Decode(&token)
	return token, err
}

// Verify checks the stored token and returns the account identity.
func (c *Client) Verify() (models.AdminIdentity, error) {
	var identity models.AdminIdentity
	err := c.do(http.MethodGet, "/admin/verify", nil, &identity)
	return identity, err
}

// UpdateAccount changes the admin username and/or email.
func (c *Client) UpdateAccount(upd models.AdminUpdate) error {
	return c.do(http.MethodPut, "/admin/update", upd, nil)
}

// ChangePassword rotates the admin password.
func (c *Client) ChangePassword(oldPassword, newPassword string) error {
	return c.do(http.MethodPut, "/admin/change-password",
		models.PasswordChange{OldPassword: oldPassword, NewPassword: newPassword}, nil)
}

// DownloadWebsite streams the admin-only site export archive into w.
func (c *Client) DownloadWebsite(w io.Writer) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/admin/download-website", nil)
	if err != nil {
		return err
	}
	c.attachToken(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}
