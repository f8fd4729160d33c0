// client/client_test.go
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zeroun-site/models"
)

// recordedRequest captures what the server saw.
type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	CType  string
	Body   []byte
}

// newRecordingServer responds to everything with status and body, recording
// each request into out.
func newRecordingServer(t *testing.T, status int, body interface{}, out *[]recordedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		buf.ReadFrom(r.Body)
		*out = append(*out, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			CType:  r.Header.Get("Content-Type"),
			Body:   buf.Bytes(),
		})
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTokenAttachedWhenStored(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusOK, []models.Event{}, &seen)

	tokens := &MemoryTokenStore{}
	require.NoError(t, tokens.Set("tok-1"))
	c := New(srv.URL, tokens)

	_, err := c.Events()
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "Bearer tok-1", seen[0].Auth)
	assert.Equal(t, "/api/events", seen[0].Path)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusOK, []models.Event{}, &seen)

	c := New(srv.URL, &MemoryTokenStore{})
	_, err := c.Events()
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Empty(t, seen[0].Auth)
}

func TestTokenReadAtCallTime(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusOK, []models.Event{}, &seen)

	tokens := &MemoryTokenStore{}
	c := New(srv.URL, tokens)

	_, err := c.Events()
	require.NoError(t, err)
	require.NoError(t, tokens.Set("later-token"))
	_, err = c.Events()
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Empty(t, seen[0].Auth)
	assert.Equal(t, "Bearer later-token", seen[1].Auth)
}

func TestAPIErrorFromDetailBody(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusNotFound, map[string]string{"detail": "Événement introuvable"}, &seen)

	c := New(srv.URL, &MemoryTokenStore{})
	_, err := c.Events()
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Événement introuvable", apiErr.Message)
	assert.Equal(t, "api error 404: Événement introuvable", apiErr.Error())
}

func TestAPIErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, &MemoryTokenStore{})
	_, err := c.Events()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestLoginIsFormEncoded(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusOK,
		models.Token{AccessToken: "jwt-here", TokenType: "bearer"}, &seen)

	c := New(srv.URL, &MemoryTokenStore{})
	token, err := c.Login("admin", "pass word")
	require.NoError(t, err)
	assert.Equal(t, "jwt-here", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)

	require.Len(t, seen, 1)
	assert.Equal(t, "POST", seen[0].Method)
	assert.Equal(t, "/api/admin/login", seen[0].Path)
	assert.Equal(t, "application/x-www-form-urlencoded", seen[0].CType)
	assert.Contains(t, string(seen[0].Body), "username=admin")
	assert.Contains(t, string(seen[0].Body), "password=pass+word")
}

func TestLoginDoesNotStoreToken(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusOK,
		models.Token{AccessToken: "jwt-here", TokenType: "bearer"}, &seen)

	tokens := &MemoryTokenStore{}
	c := New(srv.URL, tokens)
	_, err := c.Login("admin", "pw")
	require.NoError(t, err)
	assert.Empty(t, tokens.Get(), "storing the token is the session's decision")
}

func TestCreateEventSendsJSON(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusOK, models.Event{ID: "e1", Title: "Show"}, &seen)

	c := New(srv.URL, &MemoryTokenStore{})
	event, err := c.CreateEvent(models.EventCreate{Title: "Show", Date: "2026-10-01", Location: "Lyon", Description: "..."})
	require.NoError(t, err)
	assert.Equal(t, "e1", event.ID)

	require.Len(t, seen, 1)
	assert.Equal(t, "POST", seen[0].Method)
	assert.Equal(t, "/api/events", seen[0].Path)
	assert.Equal(t, "application/json", seen[0].CType)

	var sent models.EventCreate
	require.NoError(t, json.Unmarshal(seen[0].Body, &sent))
	assert.Equal(t, "Show", sent.Title)
}

func TestResourcePaths(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusOK, map[string]string{"message": "ok"}, &seen)
	c := New(srv.URL, &MemoryTokenStore{})

	c.DeleteEvent("e 1")
	c.UpdateTeamMember("t1", models.TeamMemberUpdate{})
	c.DeleteGalleryItem("g1")
	c.DeleteVideo("v1")

	require.Len(t, seen, 4)
	assert.Equal(t, "/api/events/e 1", seen[0].Path) // PathEscape decoded back by the mux
	assert.Equal(t, "PUT", seen[1].Method)
	assert.Equal(t, "/api/team/t1", seen[1].Path)
	assert.Equal(t, "/api/gallery/g1", seen[2].Path)
	assert.Equal(t, "/api/videos/v1", seen[3].Path)
}

func TestSiteContentRoundTrip(t *testing.T) {
	var seen []recordedRequest
	srv := newRecordingServer(t, http.StatusOK,
		models.SiteContent{ID: "site_content_singleton", HeroTitle: "Zero Un"}, &seen)

	c := New(srv.URL, &MemoryTokenStore{})
	content, err := c.SiteContent()
	require.NoError(t, err)
	assert.Equal(t, "Zero Un", content.HeroTitle)
	assert.Equal(t, "/api/site-content", seen[0].Path)
}

func TestDownloadWebsiteStreams(t *testing.T) {
	payload := []byte("fake-zip-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"detail":"Could not validate credentials"}`)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	tokens := &MemoryTokenStore{}
	c := New(srv.URL, tokens)

	var buf bytes.Buffer
	err := c.DownloadWebsite(&buf)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	require.NoError(t, tokens.Set("tok"))
	buf.Reset()
	require.NoError(t, c.DownloadWebsite(&buf))
	assert.Equal(t, payload, buf.Bytes())
}
