// Package browse is the single entry point front ends use to read content.
// It looks up a platform, calls the API and reshapes the answer into the
// canonical model. Operations never fail: unknown platforms, unsupported
// capabilities, transport errors and unexpected shapes all end up as empty
// or not-found results. The cause is logged at debug level.
package browse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"reelhub/internal/httputil"
	"reelhub/internal/logging"
	"reelhub/internal/media"
	"reelhub/internal/provider"
)

const (
	aiPath     = "/ai/chatgpt?prompt="
	uploadPath = "/uploader"

	// NoResponse is returned by AskAI when the reply has no usable content.
	NoResponse = "No response"
)

// listKeys are the wrapper keys tried, in order, when a list endpoint does
// not answer with a bare array.
var listKeys = []string{"data", "recommended", "results"}

// Client is what the service needs from the HTTP layer.
type Client interface {
	provider.Fetcher
	PostFile(ctx context.Context, url, filename string, r io.Reader) (string, error)
}

// Service aggregates the registered platforms behind one set of operations.
type Service struct {
	registry *provider.Registry
	client   Client
	baseURL  string
}

// New creates a Service. baseURL is only used for the AI and upload
// endpoints; providers carry their own.
func New(registry *provider.Registry, client Client, baseURL string) *Service {
	return &Service{registry: registry, client: client, baseURL: baseURL}
}

// Platforms lists the registered platforms.
func (s *Service) Platforms() []provider.Info {
	return s.registry.Infos()
}

// Has reports whether code names a registered platform.
func (s *Service) Has(code string) bool {
	_, ok := s.registry.Get(code)
	return ok
}

// Home fetches the trending, latest and recommended sections concurrently.
// Each section degrades to an empty list on its own.
func (s *Service) Home(ctx context.Context, code string) media.Sections {
	sections := media.EmptySections()

	p, ok := s.registry.Get(code)
	if !ok {
		logging.Debug("home: unknown platform", "platform", code)
		return sections
	}

	targets := map[provider.Kind]*[]media.Item{
		provider.Trending:    &sections.Trending,
		provider.Latest:      &sections.Latest,
		provider.Recommended: &sections.Recommended,
	}

	// A plain Group: one failing section must not cancel the others.
	var g errgroup.Group
	for _, kind := range provider.HomeKinds {
		dst := targets[kind]
		g.Go(func() error {
			*dst = s.list(ctx, p, kind, "")
			return nil
		})
	}
	_ = g.Wait()

	return sections
}

// Search runs query against the platform's search endpoint. Rejecting an
// empty query is up to the caller.
func (s *Service) Search(ctx context.Context, code, query string) []media.Item {
	p, ok := s.registry.Get(code)
	if !ok {
		logging.Debug("search: unknown platform", "platform", code)
		return []media.Item{}
	}
	return s.list(ctx, p, provider.Search, query)
}

func (s *Service) list(ctx context.Context, p provider.Provider, kind provider.Kind, arg string) []media.Item {
	code := p.Info().Code
	url, ok := p.URL(kind, arg)
	if !ok {
		logging.Debug("no endpoint", "platform", code, "kind", kind)
		return []media.Item{}
	}

	res, err := s.client.FetchJSON(ctx, url)
	if err != nil {
		logging.Debug("fetch failed", "platform", code, "kind", kind, "err", err)
		return []media.Item{}
	}

	raw := extractList(res)
	items := make([]media.Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, p.ParseItem(r))
	}
	if len(items) == 0 {
		logging.Debug("empty list", "platform", code, "kind", kind)
	}
	return items
}

// extractList finds the item array in a list response: the body itself, or
// the first wrapper key holding an array.
func extractList(res any) []any {
	if l, ok := res.([]any); ok {
		return l
	}
	m, ok := res.(map[string]any)
	if !ok {
		return nil
	}
	for _, k := range listKeys {
		if l, ok := m[k].([]any); ok {
			return l
		}
	}
	return nil
}

// Detail fetches a single work. The boolean is false when the platform is
// unknown, has no detail endpoint, the call fails, the body is not an
// object or it carries an error marker.
func (s *Service) Detail(ctx context.Context, code, id string) (media.Detail, bool) {
	p, ok := s.registry.Get(code)
	if !ok {
		logging.Debug("detail: unknown platform", "platform", code)
		return media.Detail{}, false
	}

	url, ok := p.URL(provider.Detail, id)
	if !ok {
		logging.Debug("no endpoint", "platform", code, "kind", provider.Detail)
		return media.Detail{}, false
	}

	res, err := s.client.FetchJSON(ctx, url)
	if err != nil {
		logging.Debug("fetch failed", "platform", code, "kind", provider.Detail, "err", err)
		return media.Detail{}, false
	}

	m, ok := res.(map[string]any)
	if !ok {
		logging.Debug("detail is not an object", "platform", code, "id", id)
		return media.Detail{}, false
	}
	if msg, failed := errorMarker(m); failed {
		logging.Debug("detail error", "platform", code, "id", id, "error", msg)
		return media.Detail{}, false
	}
	return p.ParseDetail(m), true
}

// Episodes lists the episodes or chapters of a work. The result is never nil.
func (s *Service) Episodes(ctx context.Context, code, id string) []media.Episode {
	p, ok := s.registry.Get(code)
	if !ok {
		logging.Debug("episodes: unknown platform", "platform", code)
		return []media.Episode{}
	}

	eps, err := p.Episodes(ctx, id)
	if err != nil {
		logCause(code, provider.EpisodeList, err)
		return []media.Episode{}
	}
	if eps == nil {
		return []media.Episode{}
	}
	return eps
}

// Video resolves an episode into a playable reference, empty on failure.
func (s *Service) Video(ctx context.Context, code, id string) media.VideoRef {
	p, ok := s.registry.Get(code)
	if !ok {
		logging.Debug("video: unknown platform", "platform", code)
		return media.VideoRef{}
	}

	ref, err := p.Video(ctx, id)
	if err != nil {
		logCause(code, provider.Video, err)
		return media.VideoRef{}
	}
	return ref
}

// EpisodeVideo resolves ep for playback. A direct URL on the episode is
// used as is; otherwise the episode ID is resolved through Video.
func (s *Service) EpisodeVideo(ctx context.Context, code string, ep media.Episode) media.VideoRef {
	if ep.Video != "" {
		return media.VideoRef{URL: ep.Video}
	}
	return s.Video(ctx, code, ep.ID)
}

func logCause(code string, kind provider.Kind, err error) {
	if errors.Is(err, provider.ErrUnsupported) {
		logging.Debug("unsupported", "platform", code, "kind", kind)
		return
	}
	logging.Debug("fetch failed", "platform", code, "kind", kind, "err", err)
}

// AskAI sends prompt to the chat endpoint and returns the first choice's
// message, an "Error: ..." string, or NoResponse.
func (s *Service) AskAI(ctx context.Context, prompt string) string {
	url := httputil.JoinURL(s.baseURL, aiPath+httputil.EncodeComponent(prompt))

	res, err := s.client.FetchJSON(ctx, url)
	if err != nil {
		logging.Debug("ai request failed", "err", err)
		return "Error: " + err.Error()
	}

	m, _ := res.(map[string]any)
	if choices, ok := m["choices"].([]any); ok && len(choices) > 0 {
		choice, _ := choices[0].(map[string]any)
		if msg, ok := messageContent(choice); ok {
			return strings.TrimSpace(msg)
		}
	}
	if msg, failed := errorMarker(m); failed {
		return "Error: " + msg
	}
	return NoResponse
}

// messageContent reads Message.content when it is set, else
// message.content. Any string counts, including an empty one.
func messageContent(choice map[string]any) (string, bool) {
	content := contentOf(choice, "Message")
	if !truthy(content) {
		content = contentOf(choice, "message")
	}
	s, ok := content.(string)
	return s, ok
}

func contentOf(choice map[string]any, key string) any {
	wrapper, _ := choice[key].(map[string]any)
	return wrapper["content"]
}

// Upload posts the file to the uploader and returns the response text.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	url := httputil.JoinURL(s.baseURL, uploadPath)
	body, err := s.client.PostFile(ctx, url, filename, r)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	if strings.TrimSpace(body) == "" {
		return "Uploaded.", nil
	}
	return body, nil
}

// errorMarker reports a truthy "error" field and renders it as text.
func errorMarker(m map[string]any) (string, bool) {
	v := m["error"]
	if !truthy(v) {
		return "", false
	}
	switch x := v.(type) {
	case bool:
		return "true", true
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x), true
		}
		return string(b), true
	}
}

// truthy follows JavaScript truthiness for decoded JSON values.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}
