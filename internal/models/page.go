package models

// Page is one page of search results from the content API.
// A nil NextPage marks the end of the list.
type Page struct {
	Page           int        `json:"page"`
	ResultsPerPage int        `json:"results_per_page"`
	TotalPages     int        `json:"total_pages"`
	Results        []RawEntry `json:"results"`
	NextPage       *string    `json:"next_page"`
}

// Cursor returns the next-page cursor, or "" at the end of the list.
func (p *Page) Cursor() string {
	if p == nil || p.NextPage == nil {
		return ""
	}
	return *p.NextPage
}
