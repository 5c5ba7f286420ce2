package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

const articleColumns = "id, title, body, status, created_at, updated_at"

// SQL stores articles in postgres or sqlite3 through sqlx. Queries are
// written with ? placeholders and rebound for the connection's driver.
type SQL struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQL(db *sqlx.DB) *SQL {
	return &SQL{db: db, now: time.Now}
}

func (s *SQL) All(ctx context.Context) ([]*model.Article, error) {
	list := []*model.Article{}
	err := s.db.SelectContext(ctx, &list,
		"SELECT "+articleColumns+" FROM articles ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("select articles: %w", err)
	}

	return list, nil
}

func (s *SQL) Find(ctx context.Context, id int64) (*model.Article, error) {
	var a model.Article
	err := s.db.GetContext(ctx, &a,
		s.db.Rebind("SELECT "+articleColumns+" FROM articles WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select article %d: %w", id, err)
	}

	return &a, nil
}

func (s *SQL) Create(ctx context.Context, article *model.Article) error {
	now := s.now().UTC().Truncate(time.Microsecond)

	query := s.db.Rebind(`
		INSERT INTO articles (title, body, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := s.db.QueryRowxContext(ctx, query,
		article.Title,
		article.Body,
		article.Status,
		now,
		now,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	article.ID = id
	article.CreatedAt = now
	article.UpdatedAt = now

	return nil
}

func (s *SQL) Update(ctx context.Context, article *model.Article) error {
	now := s.now().UTC().Truncate(time.Microsecond)

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE articles SET title = ?, body = ?, status = ?, updated_at = ?
		WHERE id = ?`),
		article.Title,
		article.Body,
		article.Status,
		now,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("update article %d: %w", article.ID, err)
	}
	if err := affected(res); err != nil {
		return err
	}

	article.UpdatedAt = now

	return nil
}

func (s *SQL) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM articles WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}

	return affected(res)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
