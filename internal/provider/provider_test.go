package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelhub/internal/media"
)

const testBase = "https://api.test"

// fakeFetcher answers from canned JSON keyed by URL.
type fakeFetcher struct {
	responses map[string]string
	calls     []string
}

func (f *fakeFetcher) FetchJSON(_ context.Context, url string) (any, error) {
	f.calls = append(f.calls, url)
	body, ok := f.responses[url]
	if !ok {
		return nil, fmt.Errorf("no canned response for %s", url)
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return body, nil
	}
	return v, nil
}

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func testRegistry(responses map[string]string) (*Registry, *fakeFetcher) {
	f := &fakeFetcher{responses: responses}
	return Defaults(testBase, f, Options{}), f
}

func TestParseMissingFieldsYieldsEmptyDefaults(t *testing.T) {
	reg, _ := testRegistry(nil)

	inputs := map[string]any{
		"empty object": map[string]any{},
		"nil":          nil,
		"raw text":     "upstream said no",
		"array":        []any{"x"},
		"wrong types":  map[string]any{"bookId": []any{}, "title": map[string]any{}, "id": false},
	}

	for _, info := range reg.Infos() {
		p, ok := reg.Get(info.Code)
		require.True(t, ok)
		for name, raw := range inputs {
			t.Run(info.Code+"/"+name, func(t *testing.T) {
				assert.Equal(t, media.Item{}, p.ParseItem(raw))
				assert.Equal(t, media.Detail{Tags: []string{}}, p.ParseDetail(raw))
			})
		}
	}
}

func TestDramaBoxDetail(t *testing.T) {
	reg, _ := testRegistry(nil)
	p, _ := reg.Get("dramabox")

	raw := decodeJSON(t, `{"bookId":"B123","bookName":"Title","coverWap":"x.jpg","introduction":"desc","tags":["romance"]}`)
	got := p.ParseDetail(raw)

	assert.Equal(t, media.Detail{
		Item: media.Item{ID: "B123", Title: "Title", Cover: "x.jpg", Description: "desc"},
		Tags: []string{"romance"},
	}, got)
}

func TestParseItemFallbackChains(t *testing.T) {
	reg, _ := testRegistry(nil)

	tests := []struct {
		name string
		code string
		raw  string
		want media.Item
	}{
		{
			name: "dramabox cover falls back",
			code: "dramabox",
			raw:  `{"bookId":"1","bookName":"A","cover":"c.jpg","description":"d"}`,
			want: media.Item{ID: "1", Title: "A", Cover: "c.jpg", Description: "d"},
		},
		{
			name: "reelshort numeric id and bookName",
			code: "reelshort",
			raw:  `{"movieId":991,"bookName":"B","thumb_url":"t.jpg","abstract":"ab"}`,
			want: media.Item{ID: "991", Title: "B", Cover: "t.jpg", Description: "ab"},
		},
		{
			name: "netshort empty strings are skipped",
			code: "netshort",
			raw:  `{"id":"","movieId":"m1","title":"","name":"N","image":"i.png"}`,
			want: media.Item{ID: "m1", Title: "N", Cover: "i.png"},
		},
		{
			name: "melolo snake case",
			code: "melolo",
			raw:  `{"book_id":"7","book_name":"M","cover_image_url":"cv","description":"x"}`,
			want: media.Item{ID: "7", Title: "M", Cover: "cv", Description: "x"},
		},
		{
			name: "anime indonesian fields",
			code: "anime",
			raw:  `{"urlId":"naruto","judul":"Naruto","thumb_url":"n.jpg","sinopsis":"<p>Ninja</p>"}`,
			want: media.Item{ID: "naruto", Title: "Naruto", Cover: "n.jpg", Description: "Ninja"},
		},
		{
			name: "komik manga id",
			code: "komik",
			raw:  `{"mangaId":"op","book_name":"One Piece","cover":"op.jpg","abstract":"pirates"}`,
			want: media.Item{ID: "op", Title: "One Piece", Cover: "op.jpg", Description: "pirates"},
		},
		{
			name: "zero id is missing",
			code: "moviebox",
			raw:  `{"id":0,"movieId":"mv","title":"T"}`,
			want: media.Item{ID: "mv", Title: "T"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := reg.Get(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.ParseItem(decodeJSON(t, tt.raw)))
		})
	}
}

func TestParseDetailShapes(t *testing.T) {
	reg, _ := testRegistry(nil)

	anime, _ := reg.Get("anime")
	got := anime.ParseDetail(decodeJSON(t, `{"data":[{"id":"a1","judul":"Judul","cover":"c","sinopsis":"s","genres":["Action",{"name":"Drama"}]}]}`))
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "Judul", got.Title)
	assert.Equal(t, []string{"Action", "Drama"}, got.Tags)

	komik, _ := reg.Get("komik")
	wrapped := komik.ParseDetail(decodeJSON(t, `{"data":{"manga_id":"k1","name":"Name","cover_image_url":"u","tags":"action, comedy"}}`))
	assert.Equal(t, media.Detail{
		Item: media.Item{ID: "k1", Title: "Name", Cover: "u"},
		Tags: []string{"action", "comedy"},
	}, wrapped)

	bare := komik.ParseDetail(decodeJSON(t, `{"manga_id":"k2","title":"Bare"}`))
	assert.Equal(t, "k2", bare.ID)
	assert.Equal(t, "Bare", bare.Title)

	dramabox, _ := reg.Get("dramabox")
	tagNames := dramabox.ParseDetail(decodeJSON(t, `{"bookId":"b","tagNames":["a","b"]}`))
	assert.Equal(t, []string{"a", "b"}, tagNames.Tags)
}

func TestKomikTypeIsSubstituted(t *testing.T) {
	reg, _ := testRegistry(nil)
	p, _ := reg.Get("komik")

	u, ok := p.URL(Trending, "")
	require.True(t, ok)
	assert.Equal(t, testBase+"/komik/popular?type=manga", u)

	u, ok = p.URL(Search, "one piece")
	require.True(t, ok)
	assert.Equal(t, testBase+"/komik/search?type=manga&query=one%20piece", u)

	custom := NewKomik(testBase, nil, KomikEndpoints("manhwa"))
	u, _ = custom.URL(Latest, "")
	assert.Equal(t, testBase+"/komik/latest?type=manhwa", u)
}

func TestEndpointsWithDoesNotMutate(t *testing.T) {
	ep := KomikEndpoints("")
	other := ep.With("type", "manhua")

	assert.Equal(t, "manga", ep.Params["type"])
	assert.Equal(t, "manhua", other.Params["type"])
	assert.True(t, other.Has(Search))
	assert.False(t, DramaBoxEndpoints().Has(Video))
}

func TestURLEncodesArgument(t *testing.T) {
	reg, _ := testRegistry(nil)
	p, _ := reg.Get("dramabox")

	u, ok := p.URL(Detail, "a&b=c")
	require.True(t, ok)
	assert.Equal(t, testBase+"/dramabox/detail?bookId=a%26b%3Dc", u)

	_, ok = p.URL(Video, "x")
	assert.False(t, ok)
}

func TestDramaBoxEpisodesPickDefaultVideo(t *testing.T) {
	reg, _ := testRegistry(map[string]string{
		testBase + "/dramabox/allepisode?bookId=B1": `[
			{"chapterId":"c1","chapterName":"Ep 1","cdnList":[{"videoPathList":[
				{"isDefault":0,"videoPath":"low.mp4"},
				{"isDefault":1,"videoPath":"default.mp4"}]}]},
			{"chapterId":"c2","cdnList":[{"videoPathList":[{"videoPath":"first.mp4"}]}]},
			{"chapterId":"c3"},
			{"chapterId":"c4","cdnList":[{"videoPathList":[
				{"isDefault":"1","videoPath":"string-flag.mp4"},
				{"isDefault":1.0,"videoPath":"float-flag.mp4"}]}]}
		]`,
	})
	p, _ := reg.Get("dramabox")

	eps, err := p.Episodes(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, []media.Episode{
		{ID: "c1", Name: "Ep 1", Video: "default.mp4"},
		{ID: "c2", Name: "Episode 2", Video: "first.mp4"},
		{ID: "c3", Name: "Episode 3"},
		{ID: "c4", Name: "Episode 4", Video: "float-flag.mp4"},
	}, eps)

	ref, err := p.Video(context.Background(), "default.mp4")
	require.NoError(t, err)
	assert.Equal(t, media.VideoRef{URL: "default.mp4"}, ref)
}

func TestArrayEpisodesFallBackToIndex(t *testing.T) {
	reg, _ := testRegistry(map[string]string{
		testBase + "/reelshort/episode?id=R1": `[{"episode_id":"e1","name":"Pilot"},{}]`,
		testBase + "/netshort/allepisode?id=N1": `{"data":[]}`,
	})

	reel, _ := reg.Get("reelshort")
	eps, err := reel.Episodes(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, []media.Episode{
		{ID: "e1", Name: "Pilot"},
		{ID: "1", Name: "Episode 2"},
	}, eps)

	net, _ := reg.Get("netshort")
	eps, err = net.Episodes(context.Background(), "N1")
	require.NoError(t, err)
	assert.Empty(t, eps)
}

func TestFlickReelsEpisodes(t *testing.T) {
	reg, _ := testRegistry(map[string]string{
		testBase + "/flickreels/detailAndAllEpisode?id=F1": `{"id":"F1","episodes":[{"id":5,"title":"One","video":"https://cdn/1.m3u8"},{"name":"Two"}]}`,
	})
	p, _ := reg.Get("flickreels")

	eps, err := p.Episodes(context.Background(), "F1")
	require.NoError(t, err)
	assert.Equal(t, []media.Episode{
		{ID: "5", Name: "One", Video: "https://cdn/1.m3u8"},
		{ID: "1", Name: "Two"},
	}, eps)
}

func TestAnimeEpisodesAndVideo(t *testing.T) {
	reg, _ := testRegistry(map[string]string{
		testBase + "/anime/detail?urlId=naruto":                 `{"data":[{"id":"naruto","chapter":[{"ch":"1","url":"naruto-ep-1"},{"ch":2,"url":"naruto-ep-2"}]}]}`,
		testBase + "/anime/getvideo?chapterUrlId=naruto-ep-1":   `{"data":[{"stream":[{"link":"https://s/1.mp4"},{"link":"https://s/2.mp4"}]}]}`,
		testBase + "/anime/getvideo?chapterUrlId=missing-ep-99": `{"data":[]}`,
	})
	p, _ := reg.Get("anime")

	eps, err := p.Episodes(context.Background(), "naruto")
	require.NoError(t, err)
	assert.Equal(t, []media.Episode{
		{ID: "naruto-ep-1", Name: "Episode 1"},
		{ID: "naruto-ep-2", Name: "Episode 2"},
	}, eps)

	ref, err := p.Video(context.Background(), "naruto-ep-1")
	require.NoError(t, err)
	assert.Equal(t, "https://s/1.mp4", ref.URL)

	ref, err = p.Video(context.Background(), "missing-ep-99")
	require.NoError(t, err)
	assert.True(t, ref.Empty())
}

func TestKomikChaptersAndImages(t *testing.T) {
	reg, _ := testRegistry(map[string]string{
		testBase + "/komik/chapterlist?manga_id=op": `{"data":[{"chapter_id":"c1","chapter_title":"Romance Dawn"},{"id":"c2"}]}`,
		testBase + "/komik/getimage?chapter_id=c1":  `{"images":["https://img/1.jpg","https://img/2.jpg"]}`,
	})
	p, _ := reg.Get("komik")

	chapters, err := p.Episodes(context.Background(), "op")
	require.NoError(t, err)
	assert.Equal(t, []media.Episode{
		{ID: "c1", Name: "Romance Dawn"},
		{ID: "c2", Name: "Chapter 2"},
	}, chapters)

	ref, err := p.Video(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, ref.IsImages())
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, ref.Images)
}

func TestMovieBoxVideo(t *testing.T) {
	reg, _ := testRegistry(map[string]string{
		testBase + "/moviebox/generate-link-stream-video?id=s1": `{"url":"https://stream/s1.m3u8"}`,
		testBase + "/moviebox/generate-link-stream-video?id=s2": `{"error":"expired"}`,
	})
	p, _ := reg.Get("moviebox")

	ref, err := p.Video(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, media.VideoRef{URL: "https://stream/s1.m3u8"}, ref)

	ref, err = p.Video(context.Background(), "s2")
	require.NoError(t, err)
	assert.True(t, ref.Empty())
}

func TestUnsupportedOperations(t *testing.T) {
	reg, f := testRegistry(nil)

	melolo, _ := reg.Get("melolo")
	_, err := melolo.Episodes(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrUnsupported))

	for _, code := range []string{"reelshort", "netshort", "melolo", "flickreels"} {
		p, _ := reg.Get(code)
		ref, err := p.Video(context.Background(), "x")
		assert.True(t, errors.Is(err, ErrUnsupported), code)
		assert.True(t, ref.Empty(), code)
	}

	assert.Empty(t, f.calls, "unsupported operations must not hit the network")
}

func TestFetchErrorsPropagate(t *testing.T) {
	reg, _ := testRegistry(map[string]string{})
	p, _ := reg.Get("komik")

	_, err := p.Episodes(context.Background(), "nope")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupported))
}

func TestRegistry(t *testing.T) {
	reg, _ := testRegistry(nil)

	_, ok := reg.Get("netflix")
	assert.False(t, ok)

	codes := []string{}
	for _, info := range reg.Infos() {
		codes = append(codes, info.Code)
	}
	assert.Equal(t, []string{"dramabox", "reelshort", "netshort", "moviebox", "melolo", "flickreels", "anime", "komik"}, codes)

	_, err := NewRegistry(NewMelolo("", nil, MeloloEndpoints()), NewMelolo("", nil, MeloloEndpoints()))
	assert.Error(t, err)

	var nilReg *Registry
	_, ok = nilReg.Get("dramabox")
	assert.False(t, ok)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain synopsis", "plain synopsis"},
		{"  padded  ", "padded"},
		{"<p>First</p><p>Second</p>", "First\nSecond"},
		{"Line one<br>Line two", "Line one\nLine two"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"a < b", "a < b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, plainText(tt.in), tt.in)
	}
}
