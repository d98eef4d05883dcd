package provider

import (
	"context"

	"reelhub/internal/media"
)

// DefaultComicType is the content type requested from the comic source.
const DefaultComicType = "manga"

// KomikEndpoints returns the default Komik endpoint table. List and search
// endpoints take the content type as the {type} parameter.
func KomikEndpoints(comicType string) Endpoints {
	if comicType == "" {
		comicType = DefaultComicType
	}
	return Endpoints{
		Paths: map[Kind]string{
			Trending:    "/komik/popular?type={type}",
			Latest:      "/komik/latest?type={type}",
			Recommended: "/komik/recommended?type={type}",
			Search:      "/komik/search?type={type}&query={arg}",
			Detail:      "/komik/detail?manga_id={arg}",
			EpisodeList: "/komik/chapterlist?manga_id={arg}",
			Video:       "/komik/getimage?chapter_id={arg}",
		},
		Params: map[string]string{"type": comicType},
	}
}

// Komik implements the Provider interface for the comic source. Chapters
// resolve to ordered page images instead of a stream.
type Komik struct {
	base
}

// NewKomik creates a Komik provider.
func NewKomik(baseURL string, f Fetcher, ep Endpoints) *Komik {
	return &Komik{base{
		info:      Info{Code: "komik", Name: "Komik", Color: "indigo"},
		baseURL:   baseURL,
		endpoints: ep,
		fetcher:   f,
	}}
}

func (k *Komik) ParseItem(raw any) media.Item {
	o := asObject(raw)
	return newItem(
		o.str("manga_id", "mangaId", "id"),
		o.str("title", "book_name"),
		o.str("cover_image_url", "thumb_url", "cover"),
		o.str("description", "abstract"),
	)
}

func (k *Komik) ParseDetail(raw any) media.Detail {
	o := asObject(raw)
	d := o.obj("data")
	if d == nil {
		d = o
	}
	item := newItem(
		d.str("manga_id"),
		d.str("title", "name"),
		d.str("cover_image_url"),
		d.str("description"),
	)
	return newDetail(item, d.tags("tags"))
}

func (k *Komik) Episodes(ctx context.Context, id string) ([]media.Episode, error) {
	res, err := k.fetch(ctx, EpisodeList, id)
	if err != nil {
		return nil, err
	}

	list, ok := asObject(res).list("data")
	if !ok {
		return nil, nil
	}

	chapters := make([]media.Episode, 0, len(list))
	for idx, raw := range list {
		ch := asObject(raw)
		chapters = append(chapters, media.Episode{
			ID:   indexID(ch, idx, "chapter_id", "id"),
			Name: ordinal(ch, "Chapter", idx, "chapter_title", "name"),
		})
	}
	return chapters, nil
}

func (k *Komik) Video(ctx context.Context, id string) (media.VideoRef, error) {
	res, err := k.fetch(ctx, Video, id)
	if err != nil {
		return media.VideoRef{}, err
	}

	raw, ok := asObject(res).list("images")
	if !ok {
		return media.VideoRef{}, nil
	}

	images := make([]string, 0, len(raw))
	for _, v := range raw {
		if s := scalar(v); s != "" {
			images = append(images, s)
		} else if o := asObject(v); o != nil {
			if u := o.str("url", "src", "image"); u != "" {
				images = append(images, u)
			}
		}
	}
	return media.VideoRef{Images: images}, nil
}
