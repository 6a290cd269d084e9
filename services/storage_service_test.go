package services

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "nid-front.jpg", sanitizeFilename("nid-front.jpg"))
	assert.Equal(t, "my-nid--1-.png", sanitizeFilename("my nid (1).png"))
	assert.Equal(t, "file", sanitizeFilename("   "))
	assert.NotContains(t, sanitizeFilename("../../etc/passwd"), "/")
}

func TestUploadPutsObjectAndReturnsURL(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewStorageService(srv.URL, "secret-token")
	svc.nowMillis = func() int64 { return 1756700000000 }

	url, err := svc.Upload("nid-images", "front.jpg", []byte("jpeg bytes"))
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/nid-images/1756700000000-front.jpg", url)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/nid-images/1756700000000-front.jpg", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, []byte("jpeg bytes"), gotBody)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := NewStorageService("http://storage.invalid", "t")

	_, err := svc.Upload("nid-images", "huge.jpg", bytes.Repeat([]byte{0}, MaxUploadBytes+1))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// exactly at the cap is allowed past the size check; the network error
	// that follows proves we got that far
	_, err = svc.Upload("nid-images", "max.jpg", bytes.Repeat([]byte{0}, MaxUploadBytes))
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadNon200IsUploadFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewStorageService(srv.URL, "bad-token")
	_, err := svc.Upload("media-library", "hero.png", []byte("png"))
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadWithoutEndpoint(t *testing.T) {
	svc := NewStorageService("", "")
	_, err := svc.Upload("nid-images", "a.jpg", []byte("x"))
	assert.ErrorIs(t, err, ErrStorageNotSet)
}
