package newsrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/mkorolev/cryptomart/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func newsColumns() []string {
	return []string{"id", "author_id", "title", "body", "created_at", "updated_at"}
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expectLen int
	}{
		{
			name: "Posts returned newest first",
			mockSetup: func() {
				rows := pgxmock.NewRows(newsColumns()).
					AddRow(2, 1, "Second", "body", now, now).
					AddRow(1, 1, "First", "body", now.Add(-time.Hour), now.Add(-time.Hour))
				mock.ExpectQuery(regexp.QuoteMeta(`FROM news`)).WillReturnRows(rows)
			},
			expectLen: 2,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM news`)).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.List(context.Background())

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectLen)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`WHERE id = $1`)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		result    *domain.NewsPost
	}{
		{
			name: "Post returned",
			mockSetup: func() {
				rows := pgxmock.NewRows(newsColumns()).
					AddRow(7, 1, "Title", "Body", now, now)
				mock.ExpectQuery(query).WithArgs(7).WillReturnRows(rows)
			},
			result: &domain.NewsPost{
				ID:        7,
				AuthorID:  1,
				Title:     "Title",
				Body:      "Body",
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name: "Missing post returns nil",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(7).WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), 7)

			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO news (author_id, title, body)`)).
		WithArgs(1, "Title", "Body").
		WillReturnRows(rows)

	post := &domain.NewsPost{AuthorID: 1, Title: "Title", Body: "Body"}
	result, err := repo.Create(context.Background(), post)
	assert.NoError(t, err)
	assert.Equal(t, 7, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE news`)).
		WithArgs("New", "New body", 7).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), &domain.NewsPost{ID: 7, Title: "New", Body: "New body"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM news`)).
		WithArgs(7).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
