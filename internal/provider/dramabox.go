package provider

import (
	"context"

	"reelhub/internal/media"
)

// DramaBoxEndpoints returns the default DramaBox endpoint table.
func DramaBoxEndpoints() Endpoints {
	return Endpoints{Paths: map[Kind]string{
		Trending:    "/dramabox/trending",
		Latest:      "/dramabox/latest",
		Recommended: "/dramabox/foryou",
		Search:      "/dramabox/search?query={arg}",
		Detail:      "/dramabox/detail?bookId={arg}",
		EpisodeList: "/dramabox/allepisode?bookId={arg}",
	}}
}

// DramaBox implements the Provider interface for DramaBox. Episodes carry
// their CDN video URL directly, so Video is the identity.
type DramaBox struct {
	base
}

// NewDramaBox creates a DramaBox provider.
func NewDramaBox(baseURL string, f Fetcher, ep Endpoints) *DramaBox {
	return &DramaBox{base{
		info:      Info{Code: "dramabox", Name: "DramaBox", Color: "red"},
		baseURL:   baseURL,
		endpoints: ep,
		fetcher:   f,
	}}
}

func (d *DramaBox) ParseItem(raw any) media.Item {
	o := asObject(raw)
	return newItem(
		o.str("bookId"),
		o.str("bookName"),
		o.str("coverWap", "cover"),
		o.str("introduction", "description"),
	)
}

func (d *DramaBox) ParseDetail(raw any) media.Detail {
	o := asObject(raw)
	item := newItem(
		o.str("bookId"),
		o.str("bookName"),
		o.str("coverWap", "cover"),
		o.str("introduction"),
	)
	return newDetail(item, o.tags("tags", "tagNames"))
}

func (d *DramaBox) Episodes(ctx context.Context, id string) ([]media.Episode, error) {
	res, err := d.fetch(ctx, EpisodeList, id)
	if err != nil {
		return nil, err
	}

	list, ok := res.([]any)
	if !ok {
		return nil, nil
	}

	episodes := make([]media.Episode, 0, len(list))
	for idx, raw := range list {
		ep := asObject(raw)
		episodes = append(episodes, media.Episode{
			ID:    ep.str("chapterId"),
			Name:  ordinal(ep, "Episode", idx, "chapterName"),
			Video: defaultVideoPath(ep),
		})
	}
	return episodes, nil
}

// defaultVideoPath picks the default rendition of the first CDN, or its
// first rendition when none is flagged.
func defaultVideoPath(ep object) string {
	cdn := ep.first("cdnList")
	paths, _ := cdn.list("videoPathList")
	if len(paths) == 0 {
		return ""
	}
	for _, raw := range paths {
		p := asObject(raw)
		if n, ok := number(p["isDefault"]); ok && n == 1 {
			return p.str("videoPath")
		}
	}
	return asObject(paths[0]).str("videoPath")
}

func (d *DramaBox) Video(_ context.Context, id string) (media.VideoRef, error) {
	return media.VideoRef{URL: id}, nil
}
