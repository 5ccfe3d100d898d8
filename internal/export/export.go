// Package export renders the site pages ahead of time into a Storage.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/a-h/templ"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/bilgisen/spacetraveling/internal/storage"
	"github.com/bilgisen/spacetraveling/internal/views"
)

// ErrNoBaseURL is returned when the views have no base URL. Exported pages
// only hold the list; post pages and further posts come from the live server,
// so their links must be absolute.
var ErrNoBaseURL = errors.New("export: site base URL is not set (SITE_URL)")

// Site is what the exporter needs from the content layer.
// *content.Resolver implements it.
type Site interface {
	Home(ctx context.Context) (models.PostPagination, error)
	Post(ctx context.Context, slug string) (models.DisplayPostDetail, error)
	Paths(ctx context.Context) []string
}

type Exporter struct {
	site  Site
	views *views.Views
	out   storage.Storage
}

func New(site Site, v *views.Views, out storage.Storage) *Exporter {
	return &Exporter{site: site, views: v, out: out}
}

// Export writes index.html, 404.html and one page per path the site lists.
// Any fetch failure aborts the export.
func (e *Exporter) Export(ctx context.Context) ([]string, error) {
	log := logger.WithContext(ctx)
	start := time.Now()

	if e.views.BaseURL() == "" {
		return nil, ErrNoBaseURL
	}

	home, err := e.site.Home(ctx)
	if err != nil {
		return nil, fmt.Errorf("export aborted: %w", err)
	}

	var written []string
	write := func(key string, cmp templ.Component) error {
		var buf bytes.Buffer
		if err := cmp.Render(ctx, &buf); err != nil {
			return fmt.Errorf("failed to render %s: %w", key, err)
		}
		if err := e.out.Put(ctx, key, buf.Bytes(), storage.ContentType(key)); err != nil {
			return err
		}
		written = append(written, key)
		return nil
	}

	if err := write("index.html", e.views.Home(home)); err != nil {
		return written, err
	}
	if err := write("404.html", e.views.NotFound()); err != nil {
		return written, err
	}

	for _, slug := range e.site.Paths(ctx) {
		post, err := e.site.Post(ctx, slug)
		if err != nil {
			return written, fmt.Errorf("export aborted at %s: %w", slug, err)
		}
		if err := write(path.Join("post", slug, "index.html"), e.views.Post(post)); err != nil {
			return written, err
		}
	}

	log.Info().
		Int("files", len(written)).
		Int("posts", len(home.Results)).
		Dur("duration", time.Since(start)).
		Msg("Exported site")
	return written, nil
}
