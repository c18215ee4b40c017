package newsservice

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mkorolev/cryptomart/internal/domain"
)

type Repo interface {
	List(ctx context.Context) ([]domain.NewsPost, error)
	FindByID(ctx context.Context, id int) (*domain.NewsPost, error)
	Create(ctx context.Context, post *domain.NewsPost) (*domain.NewsPost, error)
	Update(ctx context.Context, post *domain.NewsPost) error
	Delete(ctx context.Context, id int) error
}

var (
	ErrEmptyContent = errors.New("title and body are required")
	ErrPostNotFound = errors.New("news post not found")
	ErrNotAuthor    = errors.New("only the author can modify a post")
)

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.NewsPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		zap.L().Error("failed to list news", zap.Error(err))
		return nil, err
	}
	return posts, nil
}

func (s *Service) Create(ctx context.Context, authorID int, title, body string) (*domain.NewsPost, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, ErrEmptyContent
	}

	post := &domain.NewsPost{
		AuthorID: authorID,
		Title:    title,
		Body:     body,
	}
	created, err := s.repo.Create(ctx, post)
	if err != nil {
		zap.L().Error("failed to create news post", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, authorID, postID int, title, body string) (*domain.NewsPost, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, ErrEmptyContent
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != authorID {
		return nil, ErrNotAuthor
	}

	post.Title = title
	post.Body = body
	if err := s.repo.Update(ctx, post); err != nil {
		zap.L().Error("failed to update news post", zap.Error(err))
		return nil, err
	}
	return post, nil
}

func (s *Service) Delete(ctx context.Context, authorID, postID int) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != authorID {
		return ErrNotAuthor
	}
	return s.repo.Delete(ctx, postID)
}
