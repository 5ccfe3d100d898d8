package models

import "encoding/json"

// DisplayPost is the list-view form of a post.
type DisplayPost struct {
	Slug                 string `json:"uid"`
	FirstPublicationDate string `json:"first_publication_date"`
	Title                string `json:"title"`
	Subtitle             string `json:"subtitle"`
	Author               string `json:"author"`
}

// Link returns the detail page path for the post.
func (p DisplayPost) Link() string {
	return "/post/" + p.Slug
}

// DisplayPostDetail is everything the post page renders.
type DisplayPostDetail struct {
	Slug                 string `json:"uid"`
	FirstPublicationDate string `json:"first_publication_date"`
	Title                string `json:"title"`
	BannerURL            string `json:"banner_url"`
	Author               string `json:"author"`
	Heading              string `json:"heading"`
	ReadingTime          string `json:"reading_time"`
	BodyHTML             string `json:"body_html"`
}

// PostPagination is the state of a post list: the posts shown so far and
// the cursor of the next page ("" when there is none).
type PostPagination struct {
	Results  []DisplayPost `json:"results"`
	NextPage string        `json:"next_page"`
}

// HasMore reports whether another page can be loaded.
func (p PostPagination) HasMore() bool {
	return p.NextPage != ""
}

// MarshalJSON encodes an exhausted cursor as null, matching the content API.
func (p PostPagination) MarshalJSON() ([]byte, error) {
	var next *string
	if p.NextPage != "" {
		next = &p.NextPage
	}
	results := p.Results
	if results == nil {
		results = []DisplayPost{}
	}
	return json.Marshal(struct {
		Results  []DisplayPost `json:"results"`
		NextPage *string       `json:"next_page"`
	}{results, next})
}
