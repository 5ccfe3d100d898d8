package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/metrics"
	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

// Fetcher talks to the Prismic REST API of a single repository.
type Fetcher struct {
	client   *resty.Client
	endpoint *url.URL
	token    string
	validate *validator.Validate
	recorder metrics.Recorder
}

type pageQuery struct {
	DocType  string `validate:"required"`
	PageSize int    `validate:"min=1,max=100"`
}

type keyQuery struct {
	DocType string `validate:"required"`
	UID     string `validate:"required"`
}

type apiInfo struct {
	Refs []struct {
		ID          string `json:"id"`
		Ref         string `json:"ref"`
		IsMasterRef bool   `json:"isMasterRef"`
	} `json:"refs"`
}

// NewFetcher returns a Fetcher for cfg.PrismicEndpoint. Requests are never
// retried; a failed call surfaces to the caller.
func NewFetcher(cfg *config.Config) (*Fetcher, error) {
	endpoint, err := url.Parse(cfg.PrismicEndpoint)
	if err != nil || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid content endpoint %q", cfg.PrismicEndpoint)
	}

	return &Fetcher{
		client: resty.New().
			SetTimeout(cfg.HTTPTimeout).
			SetRetryCount(0).
			SetHeader("Accept", "application/json"),
		endpoint: endpoint,
		token:    cfg.PrismicAccessToken,
		validate: validator.New(),
		recorder: metrics.NoopRecorder{},
	}, nil
}

// WithRecorder sets the recorder that observes every API call.
func (f *Fetcher) WithRecorder(r metrics.Recorder) *Fetcher {
	if r != nil {
		f.recorder = r
	}
	return f
}

// FetchPage returns the first page of documents of docType.
func (f *Fetcher) FetchPage(ctx context.Context, docType string, pageSize int) (*models.Page, error) {
	if err := f.validate.Struct(pageQuery{DocType: docType, PageSize: pageSize}); err != nil {
		return nil, fmt.Errorf("invalid page query: %w", err)
	}
	page, elapsed, err := f.search(ctx, "page", url.Values{
		"q":        {fmt.Sprintf("[[at(document.type,%s)]]", strconv.Quote(docType))},
		"pageSize": {strconv.Itoa(pageSize)},
	})
	if err != nil {
		return nil, err
	}
	f.recorder.ObserveFetch("page", elapsed, metrics.ResultSuccess)
	return page, nil
}

// FetchNext follows a next_page cursor returned by a previous page.
func (f *Fetcher) FetchNext(ctx context.Context, cursor string) (*models.Page, error) {
	next, err := f.checkCursor(cursor)
	if err != nil {
		return nil, err
	}
	if f.token != "" && next.Query().Get("access_token") == "" {
		q := next.Query()
		q.Set("access_token", f.token)
		next.RawQuery = q.Encode()
	}

	var page models.Page
	elapsed, err := f.get(ctx, "next", next.String(), nil, &page)
	if err != nil {
		return nil, err
	}
	f.recorder.ObserveFetch("next", elapsed, metrics.ResultSuccess)
	return &page, nil
}

// FetchByKey returns the document of docType whose uid is uid, or ErrNotFound.
func (f *Fetcher) FetchByKey(ctx context.Context, docType, uid string) (*models.RawEntry, error) {
	if err := f.validate.Struct(keyQuery{DocType: docType, UID: uid}); err != nil {
		return nil, fmt.Errorf("invalid key query: %w", err)
	}
	page, elapsed, err := f.search(ctx, "by_key", url.Values{
		"q":        {fmt.Sprintf("[[at(my.%s.uid,%s)]]", docType, strconv.Quote(uid))},
		"pageSize": {"1"},
	})
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		f.recorder.ObserveFetch("by_key", elapsed, metrics.ResultNotFound)
		return nil, fmt.Errorf("%s %q: %w", docType, uid, ErrNotFound)
	}
	f.recorder.ObserveFetch("by_key", elapsed, metrics.ResultSuccess)
	return &page.Results[0], nil
}

func (f *Fetcher) search(ctx context.Context, op string, params url.Values) (*models.Page, time.Duration, error) {
	ref, err := f.masterRef(ctx)
	if err != nil {
		return nil, 0, err
	}
	params.Set("ref", ref)
	if f.token != "" {
		params.Set("access_token", f.token)
	}

	var page models.Page
	elapsed, err := f.get(ctx, op, f.endpoint.String()+"/documents/search", params, &page)
	if err != nil {
		return nil, elapsed, err
	}
	return &page, elapsed, nil
}

// masterRef resolves the ref of the currently published content.
func (f *Fetcher) masterRef(ctx context.Context) (string, error) {
	params := url.Values{}
	if f.token != "" {
		params.Set("access_token", f.token)
	}

	var info apiInfo
	elapsed, err := f.get(ctx, "ref", f.endpoint.String(), params, &info)
	if err != nil {
		return "", err
	}
	for _, r := range info.Refs {
		if r.IsMasterRef {
			f.recorder.ObserveFetch("ref", elapsed, metrics.ResultSuccess)
			return r.Ref, nil
		}
	}
	f.recorder.ObserveFetch("ref", elapsed, metrics.ResultFailure)
	return "", &FetchError{Op: "ref", URL: f.endpoint.String(), Err: errors.New("repository has no master ref")}
}

// get decodes a 200 JSON response into out. Failures are recorded here;
// callers record success once the payload has been checked.
func (f *Fetcher) get(ctx context.Context, op, target string, params url.Values, out interface{}) (time.Duration, error) {
	log := logger.WithContext(ctx)
	start := time.Now()

	req := f.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}
	resp, err := req.Get(target)
	elapsed := time.Since(start)

	if err != nil {
		f.recorder.ObserveFetch(op, elapsed, metrics.ResultFailure)
		log.Error().Err(err).Str("op", op).Str("url", target).Msg("Content request failed")
		return elapsed, &FetchError{Op: op, URL: target, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		f.recorder.ObserveFetch(op, elapsed, metrics.ResultFailure)
		log.Error().
			Int("status", resp.StatusCode()).
			Str("op", op).
			Str("url", target).
			Msg("Unexpected status from content API")
		return elapsed, &FetchError{Op: op, URL: target, StatusCode: resp.StatusCode()}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		f.recorder.ObserveFetch(op, elapsed, metrics.ResultFailure)
		log.Error().Err(err).Str("op", op).Str("url", target).Msg("Failed to decode content response")
		return elapsed, &FetchError{Op: op, URL: target, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	log.Debug().
		Str("op", op).
		Str("url", target).
		Dur("duration", elapsed).
		Msg("Fetched content")
	return elapsed, nil
}

// checkCursor only accepts cursors on the configured repository, so a
// client-supplied cursor cannot make the server fetch arbitrary URLs.
func (f *Fetcher) checkCursor(cursor string) (*url.URL, error) {
	if cursor == "" {
		return nil, fmt.Errorf("empty cursor: %w", ErrInvalidCursor)
	}
	next, err := url.Parse(cursor)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidCursor)
	}
	if next.Scheme != f.endpoint.Scheme || next.Host != f.endpoint.Host {
		return nil, fmt.Errorf("cursor host %q: %w", next.Host, ErrInvalidCursor)
	}
	return next, nil
}
