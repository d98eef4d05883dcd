package provider

import (
	"context"

	"reelhub/internal/media"
)

// MovieBoxEndpoints returns the default MovieBox endpoint table.
func MovieBoxEndpoints() Endpoints {
	return Endpoints{Paths: map[Kind]string{
		Trending:    "/moviebox/trending",
		Latest:      "/moviebox/homepage",
		Recommended: "/moviebox/homepage",
		Search:      "/moviebox/search?query={arg}",
		Detail:      "/moviebox/detail?id={arg}",
		EpisodeList: "/moviebox/sources?id={arg}",
		Video:       "/moviebox/generate-link-stream-video?id={arg}",
	}}
}

// MovieBox implements the Provider interface for MovieBox. Its episode list
// is a list of sources that are turned into stream links on demand.
type MovieBox struct {
	base
}

// NewMovieBox creates a MovieBox provider.
func NewMovieBox(baseURL string, f Fetcher, ep Endpoints) *MovieBox {
	return &MovieBox{base{
		info:      Info{Code: "moviebox", Name: "MovieBox", Color: "yellow"},
		baseURL:   baseURL,
		endpoints: ep,
		fetcher:   f,
	}}
}

func (m *MovieBox) ParseItem(raw any) media.Item {
	return genericItem(asObject(raw))
}

func (m *MovieBox) ParseDetail(raw any) media.Detail {
	return genericDetail(asObject(raw))
}

func (m *MovieBox) Episodes(ctx context.Context, id string) ([]media.Episode, error) {
	res, err := m.fetch(ctx, EpisodeList, id)
	if err != nil {
		return nil, err
	}
	return arrayEpisodes(res, []string{"id", "sourceId"}, []string{"title", "name"}), nil
}

func (m *MovieBox) Video(ctx context.Context, id string) (media.VideoRef, error) {
	res, err := m.fetch(ctx, Video, id)
	if err != nil {
		return media.VideoRef{}, err
	}
	return media.VideoRef{URL: asObject(res).str("url")}, nil
}
