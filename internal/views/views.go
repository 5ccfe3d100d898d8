// Package views renders the site pages. Pages are html/template files
// embedded in the binary and exposed as templ components.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/a-h/templ"
	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/models"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"loadMoreURL": LoadMoreURL,
}

// LoadMoreURL is the request the "load more" button issues for cursor.
func LoadMoreURL(cursor string) string {
	return "/posts?" + url.Values{"cursor": {cursor}}.Encode()
}

// Views renders pages with the site's branding.
type Views struct {
	site config.Site
	lang string

	home    *template.Template
	post    *template.Template
	failure *template.Template
	posts   *template.Template
}

type pageData struct {
	Site  config.Site
	Lang  string
	Title string

	List    models.PostPagination
	Post    models.DisplayPostDetail
	Body    template.HTML
	Status  int
	Message string
}

func New(site config.Site, lang string) *Views {
	return &Views{
		site:    site,
		lang:    lang,
		home:    page("home.html"),
		post:    page("post.html"),
		failure: page("error.html"),
		posts:   template.Must(template.New("posts.html").Funcs(funcs).ParseFS(files, "templates/posts.html")),
	}
}

func page(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(files,
		"templates/layout.html",
		"templates/posts.html",
		"templates/"+name,
	))
}

// BaseURL is the origin page links point at; "" keeps them relative.
func (v *Views) BaseURL() string {
	return v.site.BaseURL
}

// Home is the list page: the first posts and the "load more" button.
func (v *Views) Home(list models.PostPagination) templ.Component {
	return v.component(v.home, "layout", pageData{Title: v.site.Name, List: list})
}

// Posts is the fragment returned to a "load more" request: the new posts
// followed by the next button, if any.
func (v *Views) Posts(list models.PostPagination) templ.Component {
	return v.component(v.posts, "posts", pageData{List: list})
}

// Post is the post page. BodyHTML comes from the rich-text renderer, which
// escapes all text it is given.
func (v *Views) Post(post models.DisplayPostDetail) templ.Component {
	return v.component(v.post, "layout", pageData{
		Title: post.Title + " | " + v.site.Name,
		Post:  post,
		Body:  template.HTML(post.BodyHTML),
	})
}

func (v *Views) NotFound() templ.Component {
	return v.Error(404, "This post does not exist.")
}

// Error is the page shown for a failed request.
func (v *Views) Error(status int, message string) templ.Component {
	return v.component(v.failure, "layout", pageData{
		Title:   message,
		Status:  status,
		Message: message,
	})
}

func (v *Views) component(t *template.Template, name string, data pageData) templ.Component {
	data.Site = v.site
	data.Lang = v.lang
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}
