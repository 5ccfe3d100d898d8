package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateFormatter(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name   string
		locale string
		ts     *string
		want   string
	}{
		{"rfc3339", "en", str("2021-03-15T10:00:00Z"), "15 Mar 2021"},
		{"prismic offset", "en", str("2021-03-15T19:25:28+0000"), "15 Mar 2021"},
		{"converted to utc", "en", str("2021-03-15T23:30:00-0300"), "16 Mar 2021"},
		{"date only", "en", str("2021-12-01"), "1 Dec 2021"},
		{"portuguese", "pt-BR", str("2021-03-15T10:00:00Z"), "15 mar 2021"},
		{"portuguese base language", "pt", str("2021-05-02T10:00:00Z"), "2 mai 2021"},
		{"unknown locale", "xx-invalid-!", str("2021-03-15T10:00:00Z"), "15 Mar 2021"},
		{"missing date", "en", nil, "1 Jan 1970"},
		{"unparseable date", "en", str("yesterday"), "1 Jan 1970"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDateFormatter(tt.locale).Format(tt.ts))
		})
	}
}
