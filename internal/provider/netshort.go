package provider

import (
	"context"

	"reelhub/internal/media"
)

// NetShortEndpoints returns the default NetShort endpoint table.
func NetShortEndpoints() Endpoints {
	return Endpoints{Paths: map[Kind]string{
		Trending:    "/netshort/foryou",
		Latest:      "/netshort/theaters",
		Recommended: "/netshort/foryou",
		Search:      "/netshort/search?query={arg}",
		Detail:      "/netshort/detail?id={arg}",
		EpisodeList: "/netshort/allepisode?id={arg}",
	}}
}

// NetShort implements the Provider interface for NetShort.
type NetShort struct {
	base
}

// NewNetShort creates a NetShort provider.
func NewNetShort(baseURL string, f Fetcher, ep Endpoints) *NetShort {
	return &NetShort{base{
		info:      Info{Code: "netshort", Name: "NetShort", Color: "blue"},
		baseURL:   baseURL,
		endpoints: ep,
		fetcher:   f,
	}}
}

func (n *NetShort) ParseItem(raw any) media.Item {
	return genericItem(asObject(raw))
}

func (n *NetShort) ParseDetail(raw any) media.Detail {
	return genericDetail(asObject(raw))
}

func (n *NetShort) Episodes(ctx context.Context, id string) ([]media.Episode, error) {
	res, err := n.fetch(ctx, EpisodeList, id)
	if err != nil {
		return nil, err
	}
	return arrayEpisodes(res, []string{"id", "chapterId"}, []string{"title", "name", "chapterName"}), nil
}

func (n *NetShort) Video(context.Context, string) (media.VideoRef, error) {
	return media.VideoRef{}, n.unsupported(Video)
}

// genericItem is the item shape shared by NetShort, MovieBox and FlickReels.
func genericItem(o object) media.Item {
	return newItem(
		o.str("id", "movieId"),
		o.str("title", "name"),
		o.str("cover", "image"),
		o.str("description"),
	)
}

// genericDetail is the detail shape shared by NetShort, MovieBox and FlickReels.
func genericDetail(o object) media.Detail {
	item := newItem(o.str("id"), o.str("title"), o.str("cover"), o.str("description"))
	return newDetail(item, o.tags("tags"))
}
