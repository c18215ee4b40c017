package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/dto"
	newsservice "github.com/mkorolev/cryptomart/internal/service/newsservice"
	"github.com/mkorolev/cryptomart/pkg/auth"
)

func NewMock(t *testing.T) (*NewsHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authCtx() context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, 1)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)

	posts := []domain.NewsPost{
		{ID: 7, AuthorID: 1, Title: "Store maintenance window", Body: "body"},
	}

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Posts returned",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any()).Return(posts, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No posts",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any()).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/news", nil)
			w := httptest.NewRecorder()
			handler.List(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.NewsResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, 1)
				assert.Equal(t, "Store maintenance window", body[0].Title)
			}
		})
	}
}

func TestCreateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Post created",
			body: `{"title":"Title","body":"Body"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, "Title", "Body").Return(&domain.NewsPost{
					ID:       7,
					AuthorID: 1,
					Title:    "Title",
					Body:     "Body",
				}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid request body",
			body:         `{"title":}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Empty content rejected",
			body: `{"title":"  ","body":""}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, "  ", "").Return(nil, newsservice.ErrEmptyContent)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Internal server error",
			body: `{"title":"Title","body":"Body"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, "Title", "Body").Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/news", bytes.NewBufferString(tt.body))
			r = r.WithContext(authCtx())
			w := httptest.NewRecorder()
			handler.Create(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestUpdateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		postID       string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Post updated",
			postID: "7",
			body:   `{"title":"New","body":"New body"}`,
			prepareMock: func() {
				service.EXPECT().Update(gomock.Any(), 1, 7, "New", "New body").Return(&domain.NewsPost{
					ID:       7,
					AuthorID: 1,
					Title:    "New",
					Body:     "New body",
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid post id",
			postID:       "abc",
			body:         `{"title":"New","body":"New body"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Post not found",
			postID: "99",
			body:   `{"title":"New","body":"New body"}`,
			prepareMock: func() {
				service.EXPECT().Update(gomock.Any(), 1, 99, "New", "New body").Return(nil, newsservice.ErrPostNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "Not the author",
			postID: "7",
			body:   `{"title":"New","body":"New body"}`,
			prepareMock: func() {
				service.EXPECT().Update(gomock.Any(), 1, 7, "New", "New body").Return(nil, newsservice.ErrNotAuthor)
			},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPut, "/api/news/"+tt.postID, bytes.NewBufferString(tt.body))
			r = r.WithContext(authCtx())
			r = withURLParam(r, "id", tt.postID)
			w := httptest.NewRecorder()
			handler.Update(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestDeleteHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		postID       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Post deleted",
			postID: "7",
			prepareMock: func() {
				service.EXPECT().Delete(gomock.Any(), 1, 7).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Invalid post id",
			postID:       "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Post not found",
			postID: "99",
			prepareMock: func() {
				service.EXPECT().Delete(gomock.Any(), 1, 99).Return(newsservice.ErrPostNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "Not the author",
			postID: "7",
			prepareMock: func() {
				service.EXPECT().Delete(gomock.Any(), 1, 7).Return(newsservice.ErrNotAuthor)
			},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodDelete, "/api/news/"+tt.postID, nil)
			r = r.WithContext(authCtx())
			r = withURLParam(r, "id", tt.postID)
			w := httptest.NewRecorder()
			handler.Delete(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
