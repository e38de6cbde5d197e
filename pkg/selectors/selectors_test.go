package selectors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func loadFixture(t *testing.T, name string) *html.Node {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "parsing", "testdata", name))
	require.NoError(t, err)
	defer f.Close()

	root, err := html.Parse(f)
	require.NoError(t, err)
	return root
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var s string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s += textOf(c)
	}
	return s
}

func attrOf(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func TestDetailsSelectorsMatchFixture(t *testing.T) {
	root := loadFixture(t, "anime_details.html")

	tests := []struct {
		name  string
		sel   cascadia.Selector
		count int
	}{
		{"id", Details.ID, 1},
		{"title", Details.Title, 1},
		{"cover", Details.CoverImage, 1},
		{"summary", Details.Summary, 1},
		{"genres", Details.Genres, 3},
		{"released", Details.Released, 1},
		{"default episode", Details.DefaultEpisode, 1},
		{"episode pages", Details.EpisodePages, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.sel.MatchAll(root), tt.count)
		})
	}

	assert.Equal(t, "Cowboy Bebop", textOf(Details.Title.MatchFirst(root)))
	assert.Equal(t, "Released: 1998", textOf(Details.Released.MatchFirst(root)))
	assert.Equal(t, "281", attrOf(Details.ID.MatchFirst(root), "value"))
}

func TestListAndEpisodeSelectorsMatchFixtures(t *testing.T) {
	list := loadFixture(t, "anime_list.html")
	items := AnimeList.Items.MatchAll(list)
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.Equal(t, "a", item.Data)
	}

	episode := loadFixture(t, "episode.html")
	providers := Episode.Providers.MatchAll(episode)
	require.NotEmpty(t, providers)
	for _, p := range providers {
		assert.NotNil(t, Episode.Link.MatchFirst(p))
	}
}

func TestSelectorsFindNothingOnForeignMarkup(t *testing.T) {
	root, err := html.Parse(strings.NewReader("<html><body><div>nothing here</div></body></html>"))
	require.NoError(t, err)

	assert.Empty(t, AnimeList.Items.MatchAll(root))
	assert.Empty(t, Details.EpisodePages.MatchAll(root))
	assert.Nil(t, Details.ID.MatchFirst(root))
	assert.Empty(t, Episode.Providers.MatchAll(root))
}
