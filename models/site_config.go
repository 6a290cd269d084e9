package models

import "encoding/json"

// SiteConfig is the published marketing aggregate served to the frontend. It
// lives in the CMS, not in MySQL; merges against the compiled-in defaults are
// last-write-wins on LastUpdated (unix millis).
type SiteConfig struct {
	Hero          json.RawMessage `json:"hero,omitempty"`
	Rooms         json.RawMessage `json:"rooms,omitempty"`
	Offers        json.RawMessage `json:"offers,omitempty"`
	Restaurants   json.RawMessage `json:"restaurants,omitempty"`
	TouristGuides json.RawMessage `json:"touristGuides,omitempty"`
	Announcement  json.RawMessage `json:"announcement,omitempty"`
	LastUpdated   int64           `json:"lastUpdated"`
}
