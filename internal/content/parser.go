package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/bilgisen/spacetraveling/internal/richtext"
	"github.com/go-playground/validator/v10"
)

// Parser maps raw content entries to the records the pages render.
type Parser struct {
	dates    DateFormatter
	resolve  richtext.LinkResolver
	validate *validator.Validate
}

func NewParser(locale string) *Parser {
	return &Parser{
		dates:    NewDateFormatter(locale),
		resolve:  richtext.DefaultLinkResolver,
		validate: validator.New(),
	}
}

// NormalizeSummary builds the list-view record of raw.
func (p *Parser) NormalizeSummary(raw models.RawEntry) models.DisplayPost {
	return models.DisplayPost{
		Slug:                 raw.UID,
		FirstPublicationDate: p.dates.Format(raw.FirstPublicationDate),
		Title:                strings.TrimSpace(raw.Data.Title),
		Subtitle:             strings.TrimSpace(raw.Data.Subtitle),
		Author:               strings.TrimSpace(raw.Data.Author),
	}
}

// NormalizeSummaries keeps the API order.
func (p *Parser) NormalizeSummaries(raws []models.RawEntry) []models.DisplayPost {
	posts := make([]models.DisplayPost, 0, len(raws))
	for _, raw := range raws {
		posts = append(posts, p.NormalizeSummary(raw))
	}
	return posts
}

// NormalizeDetail builds the post-page record of raw. Only the first content
// block is rendered.
func (p *Parser) NormalizeDetail(raw models.RawEntry) (models.DisplayPostDetail, error) {
	if err := p.validate.Struct(raw.Data); err != nil {
		return models.DisplayPostDetail{}, malformed(raw.UID, err)
	}

	block := raw.Data.Content[0]
	body := richtext.AsHTML(block.Body, p.resolve)

	return models.DisplayPostDetail{
		Slug:                 raw.UID,
		FirstPublicationDate: p.dates.Format(raw.FirstPublicationDate),
		Title:                strings.TrimSpace(raw.Data.Title),
		BannerURL:            raw.Data.Banner.URL,
		Author:               strings.TrimSpace(raw.Data.Author),
		Heading:              block.Heading,
		ReadingTime:          ReadingTime(CountWords(body)),
		BodyHTML:             body,
	}, nil
}

func malformed(uid string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &MalformedEntryError{
			UID:   uid,
			Field: fe.Namespace(),
			Err:   fmt.Errorf("failed %q check", fe.Tag()),
		}
	}
	return &MalformedEntryError{UID: uid, Field: "data", Err: err}
}
