package models

import "github.com/bilgisen/spacetraveling/internal/richtext"

// RawEntry is a post document exactly as the content API returns it.
type RawEntry struct {
	UID                  string   `json:"uid"`
	Type                 string   `json:"type,omitempty"`
	FirstPublicationDate *string  `json:"first_publication_date"`
	Data                 PostData `json:"data"`
}

// PostData is the type-specific data bag of a "posts" document.
type PostData struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Author   string         `json:"author"`
	Banner   Banner         `json:"banner"`
	Content  []ContentBlock `json:"content" validate:"required,min=1"`
}

// Banner is the post's header image.
type Banner struct {
	URL string `json:"url"`
}

// ContentBlock is one section of a post: a heading followed by a rich-text body.
type ContentBlock struct {
	Heading string            `json:"heading"`
	Body    richtext.RichText `json:"body"`
}
