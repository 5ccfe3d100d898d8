package content

import (
	"context"
	"fmt"

	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/models"
)

// Source is the subset of the content API the pages need. *Fetcher implements it.
type Source interface {
	FetchPage(ctx context.Context, docType string, pageSize int) (*models.Page, error)
	FetchNext(ctx context.Context, cursor string) (*models.Page, error)
	FetchByKey(ctx context.Context, docType, uid string) (*models.RawEntry, error)
}

// Resolver produces the data behind the list and post pages.
type Resolver struct {
	source   Source
	parser   *Parser
	postType string
	pageSize int
}

func NewResolver(source Source, parser *Parser, postType string, pageSize int) *Resolver {
	return &Resolver{
		source:   source,
		parser:   parser,
		postType: postType,
		pageSize: pageSize,
	}
}

// Home returns the first page of posts for the list page.
func (r *Resolver) Home(ctx context.Context) (models.PostPagination, error) {
	page, err := r.source.FetchPage(ctx, r.postType, r.pageSize)
	if err != nil {
		return models.PostPagination{}, fmt.Errorf("failed to load post list: %w", err)
	}
	return r.paginate(page), nil
}

// Next returns the page behind cursor, normalized for the list.
func (r *Resolver) Next(ctx context.Context, cursor string) (models.PostPagination, error) {
	page, err := r.source.FetchNext(ctx, cursor)
	if err != nil {
		return models.PostPagination{}, fmt.Errorf("failed to load next posts: %w", err)
	}
	return r.paginate(page), nil
}

// Post returns the post page for slug. Unknown slugs yield ErrNotFound.
func (r *Resolver) Post(ctx context.Context, slug string) (models.DisplayPostDetail, error) {
	raw, err := r.source.FetchByKey(ctx, r.postType, slug)
	if err != nil {
		return models.DisplayPostDetail{}, err
	}

	post, err := r.parser.NormalizeDetail(*raw)
	if err != nil {
		logger.WithContext(ctx).Error().
			Err(err).
			Str("slug", slug).
			Msg("Malformed post entry")
		return models.DisplayPostDetail{}, err
	}
	return post, nil
}

// Paths lists the post pages to render ahead of time. None are: every post
// page is resolved on first request.
func (r *Resolver) Paths(ctx context.Context) []string {
	return []string{}
}

func (r *Resolver) paginate(page *models.Page) models.PostPagination {
	return models.PostPagination{
		Results:  r.parser.NormalizeSummaries(page.Results),
		NextPage: page.Cursor(),
	}
}
