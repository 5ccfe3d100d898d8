package api

import (
	"context"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/bilgisen/spacetraveling/internal/listing"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/metrics"
	"github.com/bilgisen/spacetraveling/internal/middleware"
	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/bilgisen/spacetraveling/internal/views"
	"github.com/gofiber/fiber/v2"
)

// PostService resolves the data behind the pages. *content.Resolver
// implements it.
type PostService interface {
	Home(ctx context.Context) (models.PostPagination, error)
	Next(ctx context.Context, cursor string) (models.PostPagination, error)
	Post(ctx context.Context, slug string) (models.DisplayPostDetail, error)
}

// CursorQuery is the query string of a "load more" request.
type CursorQuery struct {
	Cursor string `query:"cursor" validate:"required,url"`
}

const pageKey = "page"

type Handlers struct {
	posts    PostService
	views    *views.Views
	recorder metrics.Recorder
	version  string
}

func NewHandlers(posts PostService, v *views.Views, recorder metrics.Recorder) *Handlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Handlers{
		posts:    posts,
		views:    v,
		recorder: recorder,
		version:  "1.0.0",
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Home handles GET /
func (h *Handlers) Home(c *fiber.Ctx) error {
	c.Locals(pageKey, "home")

	list, err := h.posts.Home(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, fiber.StatusOK, h.views.Home(list))
}

// Post handles GET /post/:slug
func (h *Handlers) Post(c *fiber.Ctx) error {
	c.Locals(pageKey, "post")

	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return fiber.ErrNotFound
	}

	post, err := h.posts.Post(c.UserContext(), slug)
	if err != nil {
		return err
	}
	return h.render(c, fiber.StatusOK, h.views.Post(post))
}

// LoadMore handles GET /posts?cursor=. htmx requests get the next posts as
// an HTML fragment; other clients get {results, next_page} as JSON.
func (h *Handlers) LoadMore(c *fiber.Ctx) error {
	c.Locals(pageKey, "posts")
	q := middleware.Query[CursorQuery](c)

	ctrl := listing.Resume(h.posts, q.Cursor)
	if err := ctrl.LoadMore(c.UserContext()); err != nil {
		return err
	}
	list := ctrl.Snapshot()

	logger.WithContext(c.UserContext()).Debug().
		Int("posts", len(list.Results)).
		Bool("has_more", list.HasMore()).
		Msg("Loaded more posts")

	if isHTMX(c) {
		return h.render(c, fiber.StatusOK, h.views.Posts(list))
	}
	h.recorder.IncPageRender("posts", fiber.StatusOK)
	return c.JSON(list)
}

// NotFound handles every unmatched route.
func (h *Handlers) NotFound(c *fiber.Ctx) error {
	return fiber.ErrNotFound
}

// ErrorHandler renders the error taxonomy: unknown posts as 404 pages,
// content API failures as 502 and everything else as 500.
func (h *Handlers) ErrorHandler(c *fiber.Ctx, err error) error {
	status := middleware.StatusFromError(err)
	message := middleware.PublicMessage(status)

	if status >= fiber.StatusInternalServerError {
		logger.WithContext(c.UserContext()).Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("HTTP error")
	}

	if wantsJSON(c) {
		h.recorder.IncPageRender(pageName(c), status)
		return c.Status(status).JSON(fiber.Map{
			"error": message,
		})
	}
	if status == fiber.StatusNotFound {
		return h.render(c, status, h.views.NotFound())
	}
	return h.render(c, status, h.views.Error(status, message))
}

// render writes cmp as an HTML response with the given status.
func (h *Handlers) render(c *fiber.Ctx, status int, cmp templ.Component) error {
	h.recorder.IncPageRender(pageName(c), status)
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return cmp.Render(c.UserContext(), c.Response().BodyWriter())
}

func pageName(c *fiber.Ctx) string {
	if page, ok := c.Locals(pageKey).(string); ok {
		return page
	}
	return "other"
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

func wantsJSON(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return true
	}
	return c.Path() == "/posts" && !isHTMX(c)
}
