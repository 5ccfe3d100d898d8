package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	pages map[string]models.PostPagination
	err   error
	calls []string

	// block, when set, holds Next until released.
	block   chan struct{}
	started chan struct{}
}

func (f *fakeLoader) Next(ctx context.Context, cursor string) (models.PostPagination, error) {
	f.calls = append(f.calls, cursor)
	if f.block != nil {
		close(f.started)
		<-f.block
	}
	if f.err != nil {
		return models.PostPagination{}, f.err
	}
	return f.pages[cursor], nil
}

func post(slug string) models.DisplayPost {
	return models.DisplayPost{Slug: slug, Title: slug}
}

func TestLoadMoreAppendsPages(t *testing.T) {
	loader := &fakeLoader{pages: map[string]models.PostPagination{
		"c2": {Results: []models.DisplayPost{post("c"), post("d")}, NextPage: "c3"},
		"c3": {Results: []models.DisplayPost{post("e")}},
	}}
	c := NewController(loader, models.PostPagination{
		Results:  []models.DisplayPost{post("a"), post("b")},
		NextPage: "c2",
	})
	ctx := context.Background()

	require.NoError(t, c.LoadMore(ctx))
	assert.Len(t, c.Posts(), 4)
	assert.Equal(t, "c3", c.NextPage())
	assert.True(t, c.HasMore())

	require.NoError(t, c.LoadMore(ctx))
	posts := c.Posts()
	require.Len(t, posts, 5)
	for i, slug := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, slug, posts[i].Slug)
	}
	assert.False(t, c.HasMore())
	assert.Equal(t, Idle, c.State())
}

func TestLoadMoreWithoutCursorIsNoop(t *testing.T) {
	loader := &fakeLoader{}
	c := NewController(loader, models.PostPagination{Results: []models.DisplayPost{post("a")}})

	require.NoError(t, c.LoadMore(context.Background()))
	assert.Empty(t, loader.calls)
	assert.Len(t, c.Posts(), 1)
	assert.False(t, c.HasMore())
}

func TestLoadMoreFailureKeepsState(t *testing.T) {
	boom := errors.New("network down")
	loader := &fakeLoader{err: boom}
	c := NewController(loader, models.PostPagination{
		Results:  []models.DisplayPost{post("a")},
		NextPage: "c2",
	})

	err := c.LoadMore(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, c.Posts(), 1)
	assert.Equal(t, "c2", c.NextPage())
	assert.Equal(t, Idle, c.State())

	loader.err = nil
	loader.pages = map[string]models.PostPagination{"c2": {Results: []models.DisplayPost{post("b")}}}
	require.NoError(t, c.LoadMore(context.Background()))
	assert.Len(t, c.Posts(), 2)
	assert.Equal(t, []string{"c2", "c2"}, loader.calls)
}

func TestLoadMoreWhileLoading(t *testing.T) {
	loader := &fakeLoader{
		pages:   map[string]models.PostPagination{"c2": {Results: []models.DisplayPost{post("b")}}},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	c := Resume(loader, "c2")

	done := make(chan error, 1)
	go func() { done <- c.LoadMore(context.Background()) }()
	<-loader.started

	assert.Equal(t, Loading, c.State())
	assert.ErrorIs(t, c.LoadMore(context.Background()), ErrLoadInProgress)

	close(loader.block)
	require.NoError(t, <-done)
	assert.Len(t, c.Posts(), 1)
	assert.Len(t, loader.calls, 1)
}

func TestSnapshotIsACopy(t *testing.T) {
	c := NewController(&fakeLoader{}, models.PostPagination{Results: []models.DisplayPost{post("a")}, NextPage: "c2"})
	snap := c.Snapshot()
	snap.Results[0].Slug = "changed"
	assert.Equal(t, "a", c.Posts()[0].Slug)
	assert.Equal(t, "c2", snap.NextPage)
}
