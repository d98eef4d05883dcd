// Package media defines the canonical types every platform is mapped into.
package media

import (
	"encoding/json"
	"fmt"
)

// Item is a single work as listed in a section or search result.
type Item struct {
	ID          string `json:"id"` // Provider-local ID, unique per platform
	Title       string `json:"title"`
	Cover       string `json:"cover"`
	Description string `json:"description"`
}

// Detail is an Item with its tag list.
type Detail struct {
	Item
	Tags []string `json:"tags"`
}

// Episode represents an episode or a comic chapter.
type Episode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Video string `json:"video"` // Direct URL, empty when it must be resolved later
}

// VideoRef is a resolved playable reference: a single URL, an ordered list
// of page images, or nothing.
type VideoRef struct {
	URL    string
	Images []string
}

// Empty reports whether nothing playable was found.
func (v VideoRef) Empty() bool {
	return v.URL == "" && len(v.Images) == 0
}

// IsImages reports whether the reference is a sequence of page images.
func (v VideoRef) IsImages() bool {
	return v.URL == "" && len(v.Images) > 0
}

// MarshalJSON encodes a URL as a string, images as an array and an empty
// reference as "".
func (v VideoRef) MarshalJSON() ([]byte, error) {
	if v.IsImages() {
		return json.Marshal(v.Images)
	}
	return json.Marshal(v.URL)
}

// UnmarshalJSON accepts the forms produced by MarshalJSON.
func (v *VideoRef) UnmarshalJSON(data []byte) error {
	var images []string
	if err := json.Unmarshal(data, &images); err == nil {
		*v = VideoRef{Images: images}
		return nil
	}
	var url string
	if err := json.Unmarshal(data, &url); err != nil {
		return err
	}
	*v = VideoRef{URL: url}
	return nil
}

// Sections holds the three home page lists. Lists are never nil.
type Sections struct {
	Trending    []Item `json:"trending"`
	Latest      []Item `json:"latest"`
	Recommended []Item `json:"recommended"`
}

// EmptySections returns sections with three empty, non-nil lists.
func EmptySections() Sections {
	return Sections{
		Trending:    []Item{},
		Latest:      []Item{},
		Recommended: []Item{},
	}
}

// HistoryEntry represents a single entry in the watch history.
type HistoryEntry struct {
	Platform    string `json:"platform"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Cover       string `json:"cover"`
	LastEpisode string `json:"lastEpisode,omitempty"`
}

// UnmarshalJSON also accepts numbers for any field. Histories written by the
// web client keep numeric ids and episode indexes.
func (h *HistoryEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Platform    text `json:"platform"`
		ID          text `json:"id"`
		Title       text `json:"title"`
		Cover       text `json:"cover"`
		LastEpisode text `json:"lastEpisode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*h = HistoryEntry{
		Platform:    string(raw.Platform),
		ID:          string(raw.ID),
		Title:       string(raw.Title),
		Cover:       string(raw.Cover),
		LastEpisode: string(raw.LastEpisode),
	}
	return nil
}

// text decodes a JSON string or number as text. null reads as "".
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", data)
	}
	*t = text(n.String())
	return nil
}

// SameWork reports whether two entries refer to the same work.
func (h HistoryEntry) SameWork(other HistoryEntry) bool {
	return h.Platform == other.Platform && h.ID == other.ID
}
