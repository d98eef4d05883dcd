package provider

import (
	"context"

	"reelhub/internal/media"
)

// MeloloEndpoints returns the default Melolo endpoint table. The stream
// endpoint exists upstream but its payload is not mapped yet, so episodes
// are reported as unsupported.
func MeloloEndpoints() Endpoints {
	return Endpoints{Paths: map[Kind]string{
		Trending:    "/melolo/trending",
		Latest:      "/melolo/latest",
		Recommended: "/melolo/foryou",
		Search:      "/melolo/search?query={arg}",
		Detail:      "/melolo/detail?book_id={arg}",
		EpisodeList: "/melolo/stream?book_id={arg}",
	}}
}

// Melolo implements the Provider interface for Melolo.
type Melolo struct {
	base
}

// NewMelolo creates a Melolo provider.
func NewMelolo(baseURL string, f Fetcher, ep Endpoints) *Melolo {
	return &Melolo{base{
		info:      Info{Code: "melolo", Name: "Melolo", Color: "pink"},
		baseURL:   baseURL,
		endpoints: ep,
		fetcher:   f,
	}}
}

func (m *Melolo) ParseItem(raw any) media.Item {
	o := asObject(raw)
	return newItem(
		o.str("book_id"),
		o.str("book_name"),
		o.str("thumb_url", "cover_image_url"),
		o.str("abstract", "description"),
	)
}

func (m *Melolo) ParseDetail(raw any) media.Detail {
	o := asObject(raw)
	item := newItem(
		o.str("book_id", "id"),
		o.str("book_name", "title"),
		o.str("cover", "cover_image_url", "thumb_url"),
		o.str("abstract", "description"),
	)
	return newDetail(item, o.tags("tags"))
}

func (m *Melolo) Episodes(context.Context, string) ([]media.Episode, error) {
	return nil, m.unsupported(EpisodeList)
}

func (m *Melolo) Video(context.Context, string) (media.VideoRef, error) {
	return media.VideoRef{}, m.unsupported(Video)
}
