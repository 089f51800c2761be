package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON-encoded column types. Stored as text so the same models work against
// postgres in production and sqlite in tests.

// StringList is a JSON array of strings (amenities, tags).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Image is one entry of a listing's ordered image gallery.
type Image struct {
	URL       string `json:"url"`
	StorageID string `json:"storage_id,omitempty"`
	AltText   string `json:"alt_text,omitempty"`
}

type ImageList []Image

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ImageList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// NearbyPlace is a point of interest near a listing.
type NearbyPlace struct {
	Name     string `json:"name"`
	Distance string `json:"distance,omitempty"`
	Category string `json:"category,omitempty"`
}

type PlaceList []NearbyPlace

func (l PlaceList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *PlaceList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
