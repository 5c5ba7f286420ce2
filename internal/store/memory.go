package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ErrNotFound is returned when no article has the requested id.
var ErrNotFound = errors.New("article not found")

// Memory keeps articles in an ordered slice. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	articles []*model.Article
	nextID   int64
	now      func() time.Time
}

func NewMemory(fixtures ...*model.Article) *Memory {
	m := &Memory{nextID: 1, now: time.Now}
	for _, a := range fixtures {
		_ = m.Create(context.Background(), a)
	}

	return m
}

func (m *Memory) All(_ context.Context) ([]*model.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*model.Article, 0, len(m.articles))
	for _, a := range m.articles {
		c := *a
		list = append(list, &c)
	}

	return list, nil
}

func (m *Memory) Find(_ context.Context, id int64) (*model.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.index(id); i >= 0 {
		c := *m.articles[i]

		return &c, nil
	}

	return nil, ErrNotFound
}

func (m *Memory) Create(_ context.Context, article *model.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	article.ID = m.nextID
	article.CreatedAt = now
	article.UpdatedAt = now
	m.nextID++

	c := *article
	m.articles = append(m.articles, &c)

	return nil
}

func (m *Memory) Update(_ context.Context, article *model.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(article.ID)
	if i < 0 {
		return ErrNotFound
	}

	article.CreatedAt = m.articles[i].CreatedAt
	article.UpdatedAt = m.now().UTC()
	c := *article
	m.articles[i] = &c

	return nil
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.articles = append(m.articles[:i], m.articles[i+1:]...)

	return nil
}

// index must be called with mu held.
func (m *Memory) index(id int64) int {
	for i, a := range m.articles {
		if a.ID == id {
			return i
		}
	}

	return -1
}
