package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-backend/models"
)

func TestMergeSiteConfigLastWriteWins(t *testing.T) {
	older := models.SiteConfig{LastUpdated: 100}
	newer := models.SiteConfig{LastUpdated: 200}

	assert.Equal(t, int64(200), mergeSiteConfig(newer, older).LastUpdated)
	assert.Equal(t, int64(200), mergeSiteConfig(older, newer).LastUpdated)

	// remote wins ties
	tied := models.SiteConfig{LastUpdated: 100, Announcement: json.RawMessage(`{"enabled":true}`)}
	got := mergeSiteConfig(tied, older)
	assert.JSONEq(t, `{"enabled":true}`, string(got.Announcement))
}

func TestFetchReturnsRemoteWhenNewer(t *testing.T) {
	remote := models.SiteConfig{
		Hero:        json.RawMessage(`{"title":"Monsoon rates"}`),
		LastUpdated: defaultsLastUpdated + 1000,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/site-config.json", r.URL.Path)
		json.NewEncoder(w).Encode(remote)
	}))
	defer srv.Close()

	svc := NewSiteConfigService(srv.URL, "t")
	got := svc.Fetch()
	assert.Equal(t, remote.LastUpdated, got.LastUpdated)
	assert.JSONEq(t, `{"title":"Monsoon rates"}`, string(got.Hero))
}

func TestFetchPrefersDefaultsOverStaleRemote(t *testing.T) {
	stale := models.SiteConfig{LastUpdated: defaultsLastUpdated - 1}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(stale)
	}))
	defer srv.Close()

	svc := NewSiteConfigService(srv.URL, "t")
	got := svc.Fetch()
	assert.Equal(t, defaultsLastUpdated, got.LastUpdated)
}

func TestFetchFallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"404", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
		{"500", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"empty body", func(w http.ResponseWriter, r *http.Request) {}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("<html>oops</html>")) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			got := NewSiteConfigService(srv.URL, "t").Fetch()
			assert.Equal(t, defaultsLastUpdated, got.LastUpdated)
		})
	}
}

func TestFetchWithoutEndpointUsesDefaults(t *testing.T) {
	got := NewSiteConfigService("", "").Fetch()
	assert.Equal(t, defaultsLastUpdated, got.LastUpdated)
	assert.NotEmpty(t, got.Hero)
}

func TestPublishStampsAndPuts(t *testing.T) {
	var gotMethod, gotAuth string
	var received models.SiteConfig

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewSiteConfigService(srv.URL, "cms-token")
	cfg := models.SiteConfig{Hero: json.RawMessage(`{"title":"New season"}`)}

	got, err := svc.Publish(cfg)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "Bearer cms-token", gotAuth)
	assert.Greater(t, got.LastUpdated, defaultsLastUpdated)
	assert.Equal(t, got.LastUpdated, received.LastUpdated)
}

func TestPublishSurfacesCMSErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewSiteConfigService(srv.URL, "t").Publish(models.SiteConfig{})
	assert.ErrorIs(t, err, ErrConfigPublishFailed)

	_, err = NewSiteConfigService("", "").Publish(models.SiteConfig{})
	assert.ErrorIs(t, err, ErrConfigPublishFailed)
}
