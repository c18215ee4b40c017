package newsrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) List(ctx context.Context) ([]domain.NewsPost, error) {
	query := `
        SELECT id, author_id, title, body, created_at, updated_at
        FROM news
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get news posts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var posts []domain.NewsPost
	for rows.Next() {
		var post domain.NewsPost
		err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Body, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan news row", zap.Error(err))
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.NewsPost, error) {
	query := `
        SELECT id, author_id, title, body, created_at, updated_at
        FROM news
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var post domain.NewsPost
	err := row.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Body, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find news post", zap.Error(err))
		return nil, err
	}
	return &post, nil
}

func (r *Repository) Create(ctx context.Context, post *domain.NewsPost) (*domain.NewsPost, error) {
	query := `
		INSERT INTO news (author_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, post.AuthorID, post.Title, post.Body).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save news post", zap.Error(err))
		return nil, err
	}
	return post, nil
}

func (r *Repository) Update(ctx context.Context, post *domain.NewsPost) error {
	query := `
        UPDATE news
        SET title = $1, body = $2, updated_at = now()
        WHERE id = $3
    `
	if _, err := r.db.Exec(ctx, query, post.Title, post.Body, post.ID); err != nil {
		zap.L().Error("can't update news post", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	query := `
        DELETE FROM news
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't delete news post", zap.Error(err))
		return err
	}
	return nil
}
