package export

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/bilgisen/spacetraveling/internal/storage"
	"github.com/bilgisen/spacetraveling/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSite struct {
	homeErr error
	paths   []string
}

const baseURL = "https://blog.example"

func (s stubSite) Home(context.Context) (models.PostPagination, error) {
	if s.homeErr != nil {
		return models.PostPagination{}, s.homeErr
	}
	return models.PostPagination{
		Results: []models.DisplayPost{
			{Slug: "first", Title: "First"},
			{Slug: "second", Title: "Second"},
		},
		NextPage: "https://repo.cdn.prismic.io/api/v2/documents/search?page=2&pageSize=2",
	}, nil
}

func (s stubSite) Post(_ context.Context, slug string) (models.DisplayPostDetail, error) {
	return models.DisplayPostDetail{Slug: slug, Title: "Post " + slug}, nil
}

func (s stubSite) Paths(context.Context) []string {
	return s.paths
}

func newExporter(t *testing.T, site Site, base string) (*Exporter, *storage.Dir) {
	t.Helper()
	dir, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)
	siteCfg := config.DefaultSite()
	siteCfg.BaseURL = base
	return New(site, views.New(siteCfg, "en"), dir), dir
}

func TestExportWritesPages(t *testing.T) {
	e, dir := newExporter(t, stubSite{}, baseURL)

	written, err := e.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "404.html"}, written)

	index, err := dir.Get(context.Background(), "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="https://blog.example/post/first"`)
}

func TestExportRendersListedPaths(t *testing.T) {
	e, dir := newExporter(t, stubSite{paths: []string{"a"}}, baseURL)

	written, err := e.Export(context.Background())
	require.NoError(t, err)
	assert.Contains(t, written, "post/a/index.html")

	page, err := dir.Get(context.Background(), "post/a/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(page), "Post a")
}

func TestExportAbortsOnFetchFailure(t *testing.T) {
	boom := errors.New("api down")
	e, dir := newExporter(t, stubSite{homeErr: boom}, baseURL)

	_, err := e.Export(context.Background())
	assert.ErrorIs(t, err, boom)

	keys, err := dir.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

var linkAttr = regexp.MustCompile(`(href|hx-get)="([^"]*)"`)

func TestExportLinksPointAtLiveServer(t *testing.T) {
	e, dir := newExporter(t, stubSite{}, baseURL)

	_, err := e.Export(context.Background())
	require.NoError(t, err)

	for _, key := range []string{"index.html", "404.html"} {
		page, err := dir.Get(context.Background(), key)
		require.NoError(t, err)

		links := linkAttr.FindAllStringSubmatch(string(page), -1)
		require.NotEmpty(t, links, key)
		for _, m := range links {
			assert.True(t, strings.HasPrefix(m[2], baseURL+"/"), "%s: %s=%q is not absolute to %s", key, m[1], m[2], baseURL)
		}
	}

	index, err := dir.Get(context.Background(), "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="https://blog.example/post/second"`)
	assert.Contains(t, string(index), `hx-get="https://blog.example/posts?cursor=`)
}

func TestExportRequiresBaseURL(t *testing.T) {
	e, dir := newExporter(t, stubSite{}, "")

	_, err := e.Export(context.Background())
	assert.ErrorIs(t, err, ErrNoBaseURL)

	keys, err := dir.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}
