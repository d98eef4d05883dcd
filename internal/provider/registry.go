package provider

import "fmt"

// Registry maps platform codes to providers. It is built once at startup
// and read-only afterwards.
type Registry struct {
	byCode map[string]Provider
	order  []string
}

// NewRegistry registers providers in the given order.
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{byCode: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		code := p.Info().Code
		if code == "" {
			return nil, fmt.Errorf("provider with empty code")
		}
		if _, dup := r.byCode[code]; dup {
			return nil, fmt.Errorf("duplicate provider code %q", code)
		}
		r.byCode[code] = p
		r.order = append(r.order, code)
	}
	return r, nil
}

// Get returns the provider for code. A missing code is a normal outcome.
func (r *Registry) Get(code string) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byCode[code]
	return p, ok
}

// Infos lists the registered platforms in registration order.
func (r *Registry) Infos() []Info {
	infos := make([]Info, 0, len(r.order))
	for _, code := range r.order {
		infos = append(infos, r.byCode[code].Info())
	}
	return infos
}

// Options tunes the default providers.
type Options struct {
	ComicType string // Content type for the comic source, e.g. "manga"
}

// Defaults builds the registry of all supported platforms against baseURL.
func Defaults(baseURL string, f Fetcher, opts Options) *Registry {
	r, err := NewRegistry(
		NewDramaBox(baseURL, f, DramaBoxEndpoints()),
		NewReelShort(baseURL, f, ReelShortEndpoints()),
		NewNetShort(baseURL, f, NetShortEndpoints()),
		NewMovieBox(baseURL, f, MovieBoxEndpoints()),
		NewMelolo(baseURL, f, MeloloEndpoints()),
		NewFlickReels(baseURL, f, FlickReelsEndpoints()),
		NewAnime(baseURL, f, AnimeEndpoints()),
		NewKomik(baseURL, f, KomikEndpoints(opts.ComicType)),
	)
	if err != nil {
		// The default set has fixed, distinct codes.
		panic(err)
	}
	return r
}
