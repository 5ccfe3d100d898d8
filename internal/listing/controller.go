// Package listing holds the state of a paginated post list: the posts shown
// so far and the cursor of the next page.
package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/models"
)

// ErrLoadInProgress is returned by LoadMore while another load is running.
var ErrLoadInProgress = errors.New("listing: load already in progress")

// State of a Controller.
type State int

const (
	Idle State = iota
	Loading
)

func (s State) String() string {
	if s == Loading {
		return "loading"
	}
	return "idle"
}

// PageLoader fetches and normalizes the page behind a cursor.
// *content.Resolver implements it.
type PageLoader interface {
	Next(ctx context.Context, cursor string) (models.PostPagination, error)
}

// Controller accumulates pages of posts. It is safe for concurrent use.
type Controller struct {
	loader PageLoader

	mu       sync.Mutex
	posts    []models.DisplayPost
	nextPage string
	state    State
}

// NewController starts from an initial page, usually the one the list page
// was rendered with.
func NewController(loader PageLoader, initial models.PostPagination) *Controller {
	posts := make([]models.DisplayPost, len(initial.Results))
	copy(posts, initial.Results)
	return &Controller{
		loader:   loader,
		posts:    posts,
		nextPage: initial.NextPage,
	}
}

// Resume builds a controller with no posts yet that continues from cursor.
// It serves "load more" requests, where the client already holds the
// earlier posts.
func Resume(loader PageLoader, cursor string) *Controller {
	return NewController(loader, models.PostPagination{NextPage: cursor})
}

// LoadMore fetches the next page and appends its posts. Without a cursor it
// does nothing. On failure the posts and cursor are left as they were.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.state == Loading {
		c.mu.Unlock()
		return ErrLoadInProgress
	}
	cursor := c.nextPage
	if cursor == "" {
		c.mu.Unlock()
		return nil
	}
	c.state = Loading
	c.mu.Unlock()

	page, err := c.loader.Next(ctx, cursor)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
	if err != nil {
		logger.WithContext(ctx).Warn().
			Err(err).
			Str("cursor", cursor).
			Msg("Failed to load more posts")
		return err
	}
	c.posts = append(c.posts, page.Results...)
	c.nextPage = page.NextPage
	return nil
}

// Posts returns a copy of the posts loaded so far.
func (c *Controller) Posts() []models.DisplayPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	posts := make([]models.DisplayPost, len(c.posts))
	copy(posts, c.posts)
	return posts
}

// NextPage returns the cursor of the next page, "" when the list is complete.
func (c *Controller) NextPage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextPage
}

// HasMore reports whether the "load more" control should be shown.
func (c *Controller) HasMore() bool {
	return c.NextPage() != ""
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current list as a PostPagination.
func (c *Controller) Snapshot() models.PostPagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	posts := make([]models.DisplayPost, len(c.posts))
	copy(posts, c.posts)
	return models.PostPagination{Results: posts, NextPage: c.nextPage}
}
