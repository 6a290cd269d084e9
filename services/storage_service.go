package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Object storage accepts authenticated PUTs and serves the file back from the
// same URL. Only a 200 response counts as success.

const MaxUploadBytes = 1 << 20 // 1MB cap on identity document uploads

var (
	ErrFileTooLarge  = errors.New("file_too_large")
	ErrUploadFailed  = errors.New("upload_failed")
	ErrStorageNotSet = errors.New("storage_not_configured")
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type StorageService struct {
	Endpoint string
	Token    string
	Client   *http.Client

	// nowMillis is swappable for tests.
	nowMillis func() int64
}

func NewStorageService(endpoint, token string) *StorageService {
	return &StorageService{
		Endpoint:  strings.TrimRight(endpoint, "/"),
		Token:     token,
		Client:    &http.Client{Timeout: 30 * time.Second},
		nowMillis: func() int64 { return time.Now().UnixMilli() },
	}
}

// sanitizeFilename keeps object keys URL-safe.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}
	return unsafeFilenameChars.ReplaceAllString(name, "-")
}

// Upload PUTs the raw body under <endpoint>/<folder>/<timestamp>-<name> and
// returns the retrieval URL. Failures are transient from the caller's point
// of view: no retry, no partial state.
func (s *StorageService) Upload(folder, filename string, data []byte) (string, error) {
	if s.Endpoint == "" {
		return "", ErrStorageNotSet
	}
	if len(data) > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	url := fmt.Sprintf("%s/%s/%d-%s", s.Endpoint, folder, s.nowMillis(), sanitizeFilename(filename))

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrUploadFailed, resp.StatusCode)
	}
	return url, nil
}
