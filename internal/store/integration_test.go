//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("blog_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := Open(s.ctx, "postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "TRUNCATE articles RESTART IDENTITY")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestCreateFindUpdateDelete() {
	store := NewSQL(s.db)

	a := &model.Article{Title: "Hello", Body: "World", Status: model.StatusDraft}
	s.Require().NoError(store.Create(s.ctx, a))
	s.Equal(int64(1), a.ID)

	got, err := store.Find(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("Hello", got.Title)
	s.WithinDuration(a.CreatedAt, got.CreatedAt, time.Millisecond)

	got.Body = "Gophers"
	s.Require().NoError(store.Update(s.ctx, got))

	var body string
	s.Require().NoError(s.db.GetContext(s.ctx, &body, "SELECT body FROM articles WHERE id = $1", a.ID))
	s.Equal("Gophers", body)

	s.Require().NoError(store.Delete(s.ctx, a.ID))
	_, err = store.Find(s.ctx, a.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestAllOrderedByID() {
	store := NewSQL(s.db)

	for _, title := range []string{"a", "b"} {
		s.Require().NoError(store.Create(s.ctx, &model.Article{Title: title, Body: "x", Status: model.StatusPublic}))
	}

	list, err := store.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("a", list[0].Title)
	s.Equal("b", list[1].Title)
}

func (s *PostgresIntegrationSuite) TestMissingArticle() {
	store := NewSQL(s.db)

	_, err := store.Find(s.ctx, 404)
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(store.Delete(s.ctx, 404), ErrNotFound)
}
