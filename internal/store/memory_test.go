package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

func TestMemory_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first := &model.Article{Title: "Hi", Body: "a", Status: model.StatusPublic}
	second := &model.Article{Title: "sup", Body: "b", Status: model.StatusDraft}
	require.NoError(t, m.Create(ctx, first))
	require.NoError(t, m.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	list, err := m.All(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Hi", list[0].Title)
	assert.Equal(t, "sup", list[1].Title)
}

func TestMemory_FindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(&model.Article{Title: "Hi", Body: "a", Status: model.StatusPublic})

	a, err := m.Find(ctx, 1)
	require.NoError(t, err)
	a.Title = "changed"

	again, err := m.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hi", again.Title)
}

func TestMemory_UpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(&model.Article{Title: "Hi", Body: "a", Status: model.StatusPublic})

	a, err := m.Find(ctx, 1)
	require.NoError(t, err)
	created := a.CreatedAt

	a.Title = "Hello"
	a.CreatedAt = created.AddDate(-1, 0, 0)
	require.NoError(t, m.Update(ctx, a))

	got, err := m.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, created, got.CreatedAt)
}

func TestMemory_MissingArticle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Find(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Update(ctx, &model.Article{ID: 42}), ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, 42), ErrNotFound)
}

func TestMemory_DeleteDoesNotReuseIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(
		&model.Article{Title: "one", Body: "a", Status: model.StatusPublic},
		&model.Article{Title: "two", Body: "b", Status: model.StatusPublic},
	)

	require.NoError(t, m.Delete(ctx, 2))
	_, err := m.Find(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	a := &model.Article{Title: "three", Body: "c", Status: model.StatusPublic}
	require.NoError(t, m.Create(ctx, a))
	assert.Equal(t, int64(3), a.ID)
}
