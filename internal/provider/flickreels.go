package provider

import (
	"context"

	"reelhub/internal/media"
)

// FlickReelsEndpoints returns the default FlickReels endpoint table. Detail
// and episodes share one endpoint upstream.
func FlickReelsEndpoints() Endpoints {
	return Endpoints{Paths: map[Kind]string{
		Trending:    "/flickreels/hotrank",
		Latest:      "/flickreels/latest",
		Recommended: "/flickreels/foryou",
		Search:      "/flickreels/search?query={arg}",
		Detail:      "/flickreels/detailAndAllEpisode?id={arg}",
		EpisodeList: "/flickreels/detailAndAllEpisode?id={arg}",
	}}
}

// FlickReels implements the Provider interface for FlickReels.
type FlickReels struct {
	base
}

// NewFlickReels creates a FlickReels provider.
func NewFlickReels(baseURL string, f Fetcher, ep Endpoints) *FlickReels {
	return &FlickReels{base{
		info:      Info{Code: "flickreels", Name: "FlickReels", Color: "teal"},
		baseURL:   baseURL,
		endpoints: ep,
		fetcher:   f,
	}}
}

func (f *FlickReels) ParseItem(raw any) media.Item {
	return genericItem(asObject(raw))
}

func (f *FlickReels) ParseDetail(raw any) media.Detail {
	return genericDetail(asObject(raw))
}

func (f *FlickReels) Episodes(ctx context.Context, id string) ([]media.Episode, error) {
	res, err := f.fetch(ctx, EpisodeList, id)
	if err != nil {
		return nil, err
	}

	list, ok := asObject(res).list("episodes")
	if !ok {
		return nil, nil
	}

	episodes := make([]media.Episode, 0, len(list))
	for idx, raw := range list {
		ep := asObject(raw)
		episodes = append(episodes, media.Episode{
			ID:    indexID(ep, idx, "id"),
			Name:  ordinal(ep, "Episode", idx, "title", "name"),
			Video: ep.str("video"),
		})
	}
	return episodes, nil
}

func (f *FlickReels) Video(context.Context, string) (media.VideoRef, error) {
	return media.VideoRef{}, f.unsupported(Video)
}
