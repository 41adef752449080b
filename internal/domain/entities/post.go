package entities

import (
	"strconv"
	"time"
)

// PostDescriptor declares the translatable surface of the posts table.
var PostDescriptor = Descriptor{
	Table:  "posts",
	Fields: []string{"title", "body", "summary"},
}

var _ Translatable = (*Post)(nil)

type Post struct {
	Overlay

	ID        int64
	Slug      string
	Title     string
	Body      string
	Summary   *string // nil = not set
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Post) TranslationID() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p *Post) Field(name string) (string, bool) {
	switch name {
	case "title":
		return p.Title, true
	case "body":
		return p.Body, true
	case "summary":
		if p.Summary == nil {
			return "", false
		}
		return *p.Summary, true
	}
	return "", false
}

func (p *Post) SetField(name, value string) {
	switch name {
	case "title":
		p.Title = value
	case "body":
		p.Body = value
	case "summary":
		p.Summary = &value
	}
}
