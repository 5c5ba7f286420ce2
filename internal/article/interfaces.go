package article

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/SergeyParamoshkin/blog/internal/events"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Store persists articles. Find, Update and Delete return
// store.ErrNotFound for an unknown id.
type Store interface {
	All(ctx context.Context) ([]*model.Article, error)
	Find(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id int64) error
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}
