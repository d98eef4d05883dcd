// Package provider defines the interface for content platforms and one
// implementation per supported platform.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reelhub/internal/httputil"
	"reelhub/internal/media"
)

// ErrUnsupported is returned when a platform has no endpoint or no
// implementation for the requested operation.
var ErrUnsupported = errors.New("operation not supported by platform")

// Provider is the interface that content platforms must implement.
type Provider interface {
	// Info returns the platform code and display metadata.
	Info() Info

	// URL builds the absolute URL for an endpoint kind. The boolean is
	// false when the platform has no template for that kind.
	URL(kind Kind, arg string) (string, bool)

	// ParseItem maps one raw list element into an Item.
	ParseItem(raw any) media.Item

	// ParseDetail maps a raw detail response into a Detail.
	ParseDetail(raw any) media.Detail

	// Episodes fetches the episode or chapter list of a work.
	Episodes(ctx context.Context, id string) ([]media.Episode, error)

	// Video resolves an episode into something playable.
	Video(ctx context.Context, id string) (media.VideoRef, error)
}

// Fetcher retrieves and decodes a JSON document. Bodies that are not JSON
// come back as a string.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) (any, error)
}

// Info is the static description of a platform.
type Info struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Kind identifies an endpoint of a platform.
type Kind int

const (
	Trending Kind = iota
	Latest
	Recommended
	Search
	Detail
	EpisodeList
	Video
)

// HomeKinds are the endpoints that make up the home page, in display order.
var HomeKinds = []Kind{Trending, Latest, Recommended}

func (k Kind) String() string {
	switch k {
	case Trending:
		return "trending"
	case Latest:
		return "latest"
	case Recommended:
		return "recommended"
	case Search:
		return "search"
	case Detail:
		return "detail"
	case EpisodeList:
		return "episodes"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// Endpoints is a platform's endpoint table. Templates are paths relative to
// the API base URL. "{arg}" is replaced by the encoded operation argument;
// any other "{name}" is replaced by the encoded value of Params[name].
type Endpoints struct {
	Paths  map[Kind]string
	Params map[string]string
}

// With returns a copy of e with the parameter name set to value.
func (e Endpoints) With(name, value string) Endpoints {
	params := make(map[string]string, len(e.Params)+1)
	for k, v := range e.Params {
		params[k] = v
	}
	params[name] = value
	return Endpoints{Paths: e.Paths, Params: params}
}

// Has reports whether the table has a template for kind.
func (e Endpoints) Has(kind Kind) bool {
	return e.Paths[kind] != ""
}

// Expand fills in the template for kind.
func (e Endpoints) Expand(kind Kind, arg string) (string, bool) {
	tmpl := e.Paths[kind]
	if tmpl == "" {
		return "", false
	}

	pairs := []string{"{arg}", httputil.EncodeComponent(arg)}
	for name, value := range e.Params {
		pairs = append(pairs, "{"+name+"}", httputil.EncodeComponent(value))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl), true
}

// base carries what every platform needs: its info, endpoint table, the
// API base URL and a fetcher.
type base struct {
	info      Info
	baseURL   string
	endpoints Endpoints
	fetcher   Fetcher
}

func (b *base) Info() Info { return b.info }

func (b *base) URL(kind Kind, arg string) (string, bool) {
	path, ok := b.endpoints.Expand(kind, arg)
	if !ok {
		return "", false
	}
	return httputil.JoinURL(b.baseURL, path), true
}

// fetch retrieves the endpoint of the given kind.
func (b *base) fetch(ctx context.Context, kind Kind, arg string) (any, error) {
	url, ok := b.URL(kind, arg)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", b.info.Code, kind, ErrUnsupported)
	}
	v, err := b.fetcher.FetchJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", b.info.Code, kind, err)
	}
	return v, nil
}

func (b *base) unsupported(kind Kind) error {
	return fmt.Errorf("%s %s: %w", b.info.Code, kind, ErrUnsupported)
}
