package provider

import (
	"context"

	"reelhub/internal/media"
)

// AnimeEndpoints returns the default Anime endpoint table. Episodes are read
// from the detail payload.
func AnimeEndpoints() Endpoints {
	return Endpoints{Paths: map[Kind]string{
		Trending:    "/anime/recommended",
		Latest:      "/anime/latest",
		Recommended: "/anime/recommended",
		Search:      "/anime/search?query={arg}",
		Detail:      "/anime/detail?urlId={arg}",
		EpisodeList: "/anime/detail?urlId={arg}",
		Video:       "/anime/getvideo?chapterUrlId={arg}",
	}}
}

// Anime implements the Provider interface for the anime source. Its
// payloads wrap everything in a one-element "data" array.
type Anime struct {
	base
}

// NewAnime creates an Anime provider.
func NewAnime(baseURL string, f Fetcher, ep Endpoints) *Anime {
	return &Anime{base{
		info:      Info{Code: "anime", Name: "Anime", Color: "green"},
		baseURL:   baseURL,
		endpoints: ep,
		fetcher:   f,
	}}
}

func (a *Anime) ParseItem(raw any) media.Item {
	o := asObject(raw)
	return newItem(
		o.str("id", "url", "urlId"),
		o.str("judul", "title", "name"),
		o.str("cover", "thumb_url", "image"),
		o.str("sinopsis", "description", "abstract"),
	)
}

func (a *Anime) ParseDetail(raw any) media.Detail {
	d := asObject(raw).first("data")
	item := newItem(
		d.str("id"),
		d.str("judul", "title"),
		d.str("cover"),
		d.str("sinopsis"),
	)
	return newDetail(item, d.tags("genre", "genres"))
}

func (a *Anime) Episodes(ctx context.Context, id string) ([]media.Episode, error) {
	res, err := a.fetch(ctx, EpisodeList, id)
	if err != nil {
		return nil, err
	}

	chapters, ok := asObject(res).first("data").list("chapter")
	if !ok {
		return nil, nil
	}

	episodes := make([]media.Episode, 0, len(chapters))
	for idx, raw := range chapters {
		ch := asObject(raw)
		episodes = append(episodes, media.Episode{
			ID:   ch.str("url"),
			Name: episodeName(ch, idx),
		})
	}
	return episodes, nil
}

func episodeName(ch object, idx int) string {
	if n := ch.str("ch"); n != "" {
		return "Episode " + n
	}
	return ordinal(ch, "Episode", idx)
}

func (a *Anime) Video(ctx context.Context, id string) (media.VideoRef, error) {
	res, err := a.fetch(ctx, Video, id)
	if err != nil {
		return media.VideoRef{}, err
	}
	stream := asObject(res).first("data").first("stream")
	return media.VideoRef{URL: stream.str("link")}, nil
}
