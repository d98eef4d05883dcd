package provider

import (
	"context"

	"reelhub/internal/media"
)

// ReelShortEndpoints returns the default ReelShort endpoint table.
func ReelShortEndpoints() Endpoints {
	return Endpoints{Paths: map[Kind]string{
		Trending:    "/reelshort/homepage",
		Latest:      "/reelshort/foryou",
		Recommended: "/reelshort/foryou",
		Search:      "/reelshort/search?query={arg}",
		Detail:      "/reelshort/detail?id={arg}",
		EpisodeList: "/reelshort/episode?id={arg}",
	}}
}

// ReelShort implements the Provider interface for ReelShort.
type ReelShort struct {
	base
}

// NewReelShort creates a ReelShort provider.
func NewReelShort(baseURL string, f Fetcher, ep Endpoints) *ReelShort {
	return &ReelShort{base{
		info:      Info{Code: "reelshort", Name: "ReelShort", Color: "purple"},
		baseURL:   baseURL,
		endpoints: ep,
		fetcher:   f,
	}}
}

func (r *ReelShort) ParseItem(raw any) media.Item {
	o := asObject(raw)
	return newItem(
		o.str("id", "movieId"),
		o.str("title", "name", "bookName"),
		o.str("cover", "image", "thumb_url"),
		o.str("description", "abstract"),
	)
}

func (r *ReelShort) ParseDetail(raw any) media.Detail {
	o := asObject(raw)
	item := newItem(
		o.str("id", "series_id"),
		o.str("title", "name"),
		o.str("cover", "image"),
		o.str("description", "abstract"),
	)
	return newDetail(item, o.tags("tags"))
}

func (r *ReelShort) Episodes(ctx context.Context, id string) ([]media.Episode, error) {
	res, err := r.fetch(ctx, EpisodeList, id)
	if err != nil {
		return nil, err
	}
	return arrayEpisodes(res, []string{"id", "episode_id"}, []string{"title", "name"}), nil
}

func (r *ReelShort) Video(context.Context, string) (media.VideoRef, error) {
	return media.VideoRef{}, r.unsupported(Video)
}

// arrayEpisodes maps a bare array response into episodes whose video must be
// resolved later.
func arrayEpisodes(res any, idKeys, nameKeys []string) []media.Episode {
	list, ok := res.([]any)
	if !ok {
		return nil
	}

	episodes := make([]media.Episode, 0, len(list))
	for idx, raw := range list {
		ep := asObject(raw)
		episodes = append(episodes, media.Episode{
			ID:   indexID(ep, idx, idKeys...),
			Name: ordinal(ep, "Episode", idx, nameKeys...),
		})
	}
	return episodes
}
