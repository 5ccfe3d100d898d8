package content

import (
	"context"
	"errors"
	"testing"

	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, srv *fakePrismic) *Resolver {
	t.Helper()
	return NewResolver(newTestFetcher(t, srv), NewParser("en"), "posts", 1)
}

func TestResolverHomeAndNext(t *testing.T) {
	srv := newFakePrismic(t)
	r := newTestResolver(t, srv)
	ctx := context.Background()

	home, err := r.Home(ctx)
	require.NoError(t, err)
	require.Len(t, home.Results, 1)
	assert.Equal(t, "15 Mar 2021", home.Results[0].FirstPublicationDate)
	require.True(t, home.HasMore())

	next, err := r.Next(ctx, home.NextPage)
	require.NoError(t, err)
	require.Len(t, next.Results, 1)
	assert.Equal(t, "Criando um app CRA do zero", next.Results[0].Title)
	assert.False(t, next.HasMore())
}

func TestResolverPost(t *testing.T) {
	srv := newFakePrismic(t)
	r := newTestResolver(t, srv)

	post, err := r.Post(context.Background(), "como-utilizar-hooks")
	require.NoError(t, err)
	assert.Equal(t, "Como utilizar Hooks", post.Title)
	assert.Equal(t, "Joseph Oliveira", post.Author)

	_, err = r.Post(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolverPropagatesFetchFailure(t *testing.T) {
	srv := newFakePrismic(t)
	srv.status.Store(502)
	r := newTestResolver(t, srv)

	_, err := r.Home(context.Background())
	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))

	_, err = r.Post(context.Background(), "como-utilizar-hooks")
	assert.True(t, errors.As(err, &fetchErr))
	assert.False(t, errors.Is(err, ErrNotFound))
}

type stubSource struct {
	entry *models.RawEntry
}

func (s stubSource) FetchPage(context.Context, string, int) (*models.Page, error) {
	return &models.Page{}, nil
}

func (s stubSource) FetchNext(context.Context, string) (*models.Page, error) {
	return &models.Page{}, nil
}

func (s stubSource) FetchByKey(context.Context, string, string) (*models.RawEntry, error) {
	return s.entry, nil
}

func TestResolverMalformedPost(t *testing.T) {
	r := NewResolver(stubSource{entry: &models.RawEntry{UID: "broken"}}, NewParser("en"), "posts", 2)

	_, err := r.Post(context.Background(), "broken")
	var malformedErr *MalformedEntryError
	assert.True(t, errors.As(err, &malformedErr))
}

func TestResolverEmptyBlog(t *testing.T) {
	r := NewResolver(stubSource{}, NewParser("en"), "posts", 2)

	home, err := r.Home(context.Background())
	require.NoError(t, err)
	assert.Empty(t, home.Results)
	assert.False(t, home.HasMore())
}

func TestResolverPathsIsEmpty(t *testing.T) {
	r := NewResolver(stubSource{}, NewParser("en"), "posts", 2)
	paths := r.Paths(context.Background())
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
}
