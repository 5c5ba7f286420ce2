package model

import (
	"sort"
	"strings"
	"time"
)

// Article statuses.
const (
	StatusPublic   = "public"
	StatusPrivate  = "private"
	StatusArchived = "archived"
	StatusDraft    = "draft"
)

// ValidStatuses contains all valid article statuses.
var ValidStatuses = []string{StatusPublic, StatusPrivate, StatusArchived, StatusDraft}

// Article data model. ID, CreatedAt and UpdatedAt belong to the store.
type Article struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" validate:"notblank"`
	Body      string    `json:"body" db:"body" validate:"notblank"`
	Status    string    `json:"status" db:"status" validate:"required,status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewArticle returns the blank article a new-form starts from.
func NewArticle() *Article {
	return &Article{Status: StatusPublic}
}

func (a *Article) Archived() bool {
	return a.Status == StatusArchived
}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}

	return false
}

// ArticleParams is the set of fields a client may write. A nil field was
// not submitted.
type ArticleParams struct {
	Title  *string
	Body   *string
	Status *string
}

// Apply copies the submitted fields onto a.
func (p ArticleParams) Apply(a *Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Body != nil {
		a.Body = *p.Body
	}
	if p.Status != nil {
		a.Status = strings.TrimSpace(*p.Status)
	}
}

// ValidationError lists the messages for every invalid field.
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Messages returns "field message" strings sorted by field, for display.
func (e *ValidationError) Messages() []string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		for _, m := range e.Fields[f] {
			out = append(out, strings.ToUpper(f[:1])+f[1:]+" "+m)
		}
	}

	return out
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), ", ")
}
