// Package metrics records content-fetch and page-render metrics. Components
// take a Recorder and default to NoopRecorder, so metrics stay optional.
package metrics

import "time"

// Result labels for fetch counters.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultFailure  = "failure"
)

// Recorder defines the observability hooks used by the content client and the page handlers.
type Recorder interface {
	ObserveFetch(op string, d time.Duration, result string)
	IncPageRender(page string, status int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveFetch(string, time.Duration, string) {}
func (NoopRecorder) IncPageRender(string, int)                  {}
