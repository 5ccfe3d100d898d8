package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, cmp templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, cmp.Render(context.Background(), &buf))
	return buf.String()
}

func testViews() *Views {
	return New(config.DefaultSite(), "en")
}

func TestHomeLinksEveryPost(t *testing.T) {
	out := render(t, testViews().Home(models.PostPagination{
		Results: []models.DisplayPost{
			{Slug: "first", Title: "First", FirstPublicationDate: "15 Mar 2021"},
			{Slug: "second", Title: "Second <b>"},
		},
		NextPage: "https://repo.cdn.prismic.io/api/v2/documents/search?page=2&pageSize=2",
	}))

	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `href="/post/first"`)
	assert.Contains(t, out, `href="/post/second"`)
	assert.Contains(t, out, "Second &lt;b&gt;")
	assert.Contains(t, out, "15 Mar 2021")
	assert.Contains(t, out, "htmx.org")
	assert.Contains(t, out, `hx-get="/posts?cursor=https%3A%2F%2Frepo.cdn.prismic.io%2Fapi%2Fv2%2Fdocuments%2Fsearch%3Fpage%3D2%26pageSize%3D2"`)
	assert.Contains(t, out, "Load more posts")
}

func TestLoadMoreButtonDropsRepeatClicks(t *testing.T) {
	out := render(t, testViews().Home(models.PostPagination{
		Results:  []models.DisplayPost{{Slug: "first"}},
		NextPage: "https://repo.cdn.prismic.io/api/v2/documents/search?page=2",
	}))
	assert.Contains(t, out, `hx-sync="this:drop"`)
	assert.Contains(t, out, `hx-disabled-elt="this"`)
}

func TestHomeLinksAreAbsoluteWithBaseURL(t *testing.T) {
	site := config.DefaultSite()
	site.BaseURL = "https://blog.example"
	v := New(site, "en")

	out := render(t, v.Home(models.PostPagination{
		Results:  []models.DisplayPost{{Slug: "first"}},
		NextPage: "https://repo.cdn.prismic.io/api/v2/documents/search?page=2",
	}))
	assert.Contains(t, out, `href="https://blog.example/"`)
	assert.Contains(t, out, `href="https://blog.example/post/first"`)
	assert.Contains(t, out, `hx-get="https://blog.example/posts?cursor=`)
	assert.NotContains(t, out, `href="/`)

	out = render(t, v.Posts(models.PostPagination{Results: []models.DisplayPost{{Slug: "third"}}}))
	assert.Contains(t, out, `href="https://blog.example/post/third"`)
}

func TestHomeWithoutNextPageHasNoButton(t *testing.T) {
	out := render(t, testViews().Home(models.PostPagination{Results: []models.DisplayPost{{Slug: "only"}}}))
	assert.NotContains(t, out, "load-more")
	assert.Equal(t, 1, strings.Count(out, `href="/post/`))
}

func TestPostsFragment(t *testing.T) {
	out := render(t, testViews().Posts(models.PostPagination{Results: []models.DisplayPost{{Slug: "third"}}}))
	assert.NotContains(t, out, "<html")
	assert.Contains(t, out, `href="/post/third"`)
	assert.NotContains(t, out, "load-more")
}

func TestPostPage(t *testing.T) {
	out := render(t, testViews().Post(models.DisplayPostDetail{
		Slug:                 "como-utilizar-hooks",
		Title:                "Como utilizar Hooks",
		FirstPublicationDate: "15 Mar 2021",
		Author:               "Joseph Oliveira",
		BannerURL:            "https://images.prismic.io/banner.png",
		Heading:              "Proin et varius",
		ReadingTime:          "4 min",
		BodyHTML:             "<p>Nullam <strong>dolor</strong></p>",
	}))

	assert.Contains(t, out, "<title>Como utilizar Hooks | spacetraveling</title>")
	assert.Contains(t, out, `src="https://images.prismic.io/banner.png"`)
	assert.Contains(t, out, "4 min")
	assert.Contains(t, out, "<h2>Proin et varius</h2>")
	assert.Contains(t, out, "<p>Nullam <strong>dolor</strong></p>")
}

func TestErrorPages(t *testing.T) {
	out := render(t, testViews().NotFound())
	assert.Contains(t, out, "<h1>404</h1>")

	out = render(t, testViews().Error(502, "Posts could not be loaded."))
	assert.Contains(t, out, "<h1>502</h1>")
	assert.Contains(t, out, "Posts could not be loaded.")
}
