package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/parsing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "parsing", "testdata", name))
	require.NoError(t, err)
	return raw
}

// stubTransport answers every request with the same response and records
// the URLs it was asked for.
type stubTransport struct {
	res  Response
	err  error
	urls []string
}

func (s *stubTransport) Get(_ context.Context, url string) (Response, error) {
	s.urls = append(s.urls, url)
	return s.res, s.err
}

func TestResolve(t *testing.T) {
	extract := func(b []byte) (string, error) { return string(b), nil }

	got, err := resolve(Response{StatusCode: 200, Body: []byte("ok")}, "x", extract)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	_, err = resolve(Response{StatusCode: 404}, "cowboy-bebop", extract)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "cowboy-bebop", notFound.Identifier)

	for _, code := range []int{201, 301, 403, 500, 503} {
		_, err = resolve(Response{StatusCode: code}, "x", extract)
		var transport *TransportError
		require.ErrorAs(t, err, &transport)
		assert.Equal(t, code, transport.Code)
	}
}

func TestResolveDoesNotExtractOnError(t *testing.T) {
	called := false
	extract := func([]byte) (int, error) {
		called = true
		return 1, nil
	}

	_, err := resolve(Response{StatusCode: 404, Body: []byte("body")}, "x", extract)
	require.Error(t, err)
	_, err = resolve(Response{StatusCode: 502, Body: []byte("body")}, "x", extract)
	require.Error(t, err)
	assert.False(t, called)
}

func TestStatusMappingIsUniform(t *testing.T) {
	ops := []struct {
		name       string
		identifier string
		call       func(*GogoAnime) error
	}{
		{"list", "3", func(g *GogoAnime) error { _, err := g.AnimeList(context.Background(), 3); return err }},
		{"search", "bebop", func(g *GogoAnime) error { _, err := g.Search(context.Background(), "bebop"); return err }},
		{"details", "cowboy-bebop", func(g *GogoAnime) error { _, err := g.Details(context.Background(), "cowboy-bebop"); return err }},
		{"episode", "cowboy-bebop", func(g *GogoAnime) error { _, err := g.Episode(context.Background(), "cowboy-bebop", 2); return err }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			g := NewGogoAnime(&stubTransport{res: Response{StatusCode: 404}}, "https://base", "https://ajax")
			var notFound *NotFoundError
			require.ErrorAs(t, op.call(g), &notFound)
			assert.Equal(t, op.identifier, notFound.Identifier)

			g = NewGogoAnime(&stubTransport{res: Response{StatusCode: 500}}, "https://base", "https://ajax")
			var transport *TransportError
			require.ErrorAs(t, op.call(g), &transport)
			assert.Equal(t, 500, transport.Code)

			g = NewGogoAnime(&stubTransport{res: Response{StatusCode: 200, Body: []byte("{}")}}, "https://base", "https://ajax")
			err := op.call(g)
			assert.False(t, errors.As(err, &notFound))
			assert.False(t, errors.As(err, &transport))
		})
	}
}

func TestTransportErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection refused")
	g := NewGogoAnime(&stubTransport{err: boom}, "https://base", "https://ajax")

	_, err := g.Details(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestURLs(t *testing.T) {
	stub := &stubTransport{res: Response{StatusCode: 404}}
	g := NewGogoAnime(stub, "https://gogo.example/", "https://ajax.example")
	ctx := context.Background()

	_, _ = g.AnimeList(ctx, 2)
	_, _ = g.Search(ctx, "cowboy bebop&co")
	_, _ = g.Details(ctx, "cowboy-bebop")
	_, _ = g.Episode(ctx, "cowboy-bebop", 5)

	assert.Equal(t, []string{
		"https://gogo.example/anime-list.html?page=2",
		"https://ajax.example/site/loadAjaxSearch?keyword=cowboy+bebop%26co&id=-1&link_web=https%3A%2F%2Fgogo.example%2F",
		"https://gogo.example/category/cowboy-bebop",
		"https://gogo.example/cowboy-bebop-episode-5",
	}, stub.urls)
}

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/anime-list.html", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(fixture(t, "anime_list.html"))
	})
	mux.HandleFunc("/site/loadAjaxSearch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("keyword") != "cowboy bebop" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(fixture(t, "search.json"))
	})
	mux.HandleFunc("/category/cowboy-bebop", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture(t, "anime_details.html"))
	})
	mux.HandleFunc("/category/broken", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture(t, "anime_details_missing_id.html"))
	})
	mux.HandleFunc("/cowboy-bebop-episode-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture(t, "episode.html"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGogoAnimeOverHTTP(t *testing.T) {
	srv := newSiteServer(t)
	g := NewGogoAnime(NewRestyTransport(5*time.Second, "enjoi-test"), srv.URL, srv.URL)
	ctx := context.Background()

	assert.Equal(t, "gogoanime", g.Name())

	list, err := g.AnimeList(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, data.Anime{Slug: "one-piece", Title: "One Piece"}, list[0])

	results, err := g.Search(ctx, "cowboy bebop")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "cowboy-bebop", results[0].Slug)

	details, err := g.Details(ctx, "cowboy-bebop")
	require.NoError(t, err)
	assert.Equal(t, 281, details.ID)
	assert.Equal(t, 26, details.EpisodeCount)

	episode, err := g.Episode(ctx, "cowboy-bebop", 1)
	require.NoError(t, err)
	require.Len(t, episode.Providers, 2)
	assert.Equal(t, "vidcdn", episode.Providers[0].ID)
}

func TestGogoAnimeOverHTTPErrors(t *testing.T) {
	srv := newSiteServer(t)
	g := NewGogoAnime(NewRestyTransport(5*time.Second, ""), srv.URL, srv.URL)
	ctx := context.Background()

	_, err := g.AnimeList(ctx, 9)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9", notFound.Identifier)

	_, err = g.Search(ctx, "nothing")
	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, http.StatusServiceUnavailable, transport.Code)

	_, err = g.Episode(ctx, "cowboy-bebop", 99)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "cowboy-bebop", notFound.Identifier)

	_, err = g.Details(ctx, "broken")
	var missing *parsing.MissingElementError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "id", missing.Field)
}
