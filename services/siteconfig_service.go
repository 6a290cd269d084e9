package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"resort-backend/models"
)

var ErrConfigPublishFailed = errors.New("config_publish_failed")

// defaultsLastUpdated is the build stamp of the compiled-in config; a CMS
// version only wins when it is at least this new (last-write-wins).
const defaultsLastUpdated = int64(1756598400000) // 2025-08-31

func defaultSiteConfig() models.SiteConfig {
	return models.SiteConfig{
		Hero: json.RawMessage(`{
			"title": "Your coastal escape",
			"subtitle": "Rooms, dining and day trips on one shore",
			"mediaType": "image"
		}`),
		Announcement: json.RawMessage(`{"enabled": false, "text": ""}`),
		LastUpdated:  defaultsLastUpdated,
	}
}

// SiteConfigService talks to the external CMS: GET of the published JSON,
// PUT of the full document on admin publish. Whole-document last-write-wins,
// no field merge.
type SiteConfigService struct {
	Endpoint string
	Token    string
	Client   *http.Client
}

func NewSiteConfigService(endpoint, token string) *SiteConfigService {
	return &SiteConfigService{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Token:    token,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// mergeSiteConfig picks remote or fallback by LastUpdated. Remote wins ties.
func mergeSiteConfig(remote, fallback models.SiteConfig) models.SiteConfig {
	if remote.LastUpdated >= fallback.LastUpdated {
		return remote
	}
	return fallback
}

// Fetch returns the effective site config. Any fetch problem (down, 404,
// malformed body) falls back to the compiled-in defaults; the error is
// logged, never surfaced.
func (s *SiteConfigService) Fetch() models.SiteConfig {
	fallback := defaultSiteConfig()
	if s.Endpoint == "" {
		return fallback
	}

	resp, err := s.Client.Get(s.Endpoint + "/site-config.json")
	if err != nil {
		logrus.WithError(err).Warn("site config fetch failed, using defaults")
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return fallback
	}

	var remote models.SiteConfig
	if err := json.Unmarshal(body, &remote); err != nil {
		logrus.WithError(err).Warn("site config parse failed, using defaults")
		return fallback
	}
	return mergeSiteConfig(remote, fallback)
}

// Publish stamps the document and PUTs it whole to the CMS.
func (s *SiteConfigService) Publish(cfg models.SiteConfig) (models.SiteConfig, error) {
	if s.Endpoint == "" {
		return cfg, ErrConfigPublishFailed
	}
	cfg.LastUpdated = time.Now().UnixMilli()

	body, err := json.Marshal(cfg)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfigPublishFailed, err)
	}

	req, err := http.NewRequest(http.MethodPut, s.Endpoint+"/site-config.json", bytes.NewReader(body))
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfigPublishFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfigPublishFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return cfg, fmt.Errorf("%w: HTTP %d", ErrConfigPublishFailed, resp.StatusCode)
	}
	return cfg, nil
}
