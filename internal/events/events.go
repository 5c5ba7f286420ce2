// Package events publishes article lifecycle events after successful writes.
package events

import (
	"context"
	"time"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDestroyed = "destroyed"
)

type Event struct {
	Action    string        `json:"action"`
	Article   model.Article `json:"article"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewEvent(action string, article *model.Article) Event {
	return Event{
		Action:    action,
		Article:   *article,
		Timestamp: time.Now().UTC(),
	}
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
