package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/internal/dto"
	newsservice "github.com/mkorolev/cryptomart/internal/service/newsservice"
	"github.com/mkorolev/cryptomart/pkg/auth"
	"github.com/mkorolev/cryptomart/pkg/utils"
)

type Service interface {
	List(ctx context.Context) ([]domain.NewsPost, error)
	Create(ctx context.Context, authorID int, title, body string) (*domain.NewsPost, error)
	Update(ctx context.Context, authorID, postID int, title, body string) (*domain.NewsPost, error)
	Delete(ctx context.Context, authorID, postID int) error
}

type NewsHandler struct {
	newsService Service
}

func New(newsService Service) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
	}
}

// List godoc
//
//	@Summary		List news posts
//	@Description	Retrieve all published news posts, newest first
//	@Tags			News
//	@Produce		json
//	@Success		200	{array}		dto.NewsResponseDTO
//	@Success		204	{object}	utils.Response	"No data available"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/news [get]
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.newsService.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(posts) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.NewsResponseDTO, len(posts))
	for i, post := range posts {
		response[i] = newsToDTO(post)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Create godoc
//
//	@Summary		Publish a news post
//	@Description	Create a news post authored by the authorized user
//	@Tags			News
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.NewsRequestDTO	true	"News post payload"
//	@Success		201		{object}	dto.NewsResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Empty title or body"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/news [post]
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.NewsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.newsService.Create(r.Context(), userID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, newsservice.ErrEmptyContent) {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, newsToDTO(*post))
}

// Update godoc
//
//	@Summary		Edit a news post
//	@Description	Replace the title and body of a post. Only the author may edit.
//	@Tags			News
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Post ID"
//	@Param			request	body		dto.NewsRequestDTO	true	"News post payload"
//	@Success		200		{object}	dto.NewsResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not the author"
//	@Failure		404		{object}	utils.Response	"Post not found"
//	@Failure		422		{object}	utils.Response	"Empty title or body"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/news/{id} [put]
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	var req dto.NewsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.newsService.Update(r.Context(), userID, postID, req.Title, req.Body)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newsToDTO(*post))
}

// Delete godoc
//
//	@Summary		Delete a news post
//	@Description	Remove a post. Only the author may delete.
//	@Tags			News
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Post ID"
//	@Success		204	"Post deleted"
//	@Failure		400	{object}	utils.Response	"Invalid post id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not the author"
//	@Failure		404	{object}	utils.Response	"Post not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/news/{id} [delete]
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	if err := h.newsService.Delete(r.Context(), userID, postID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NewsHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, newsservice.ErrPostNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, newsservice.ErrNotAuthor):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, newsservice.ErrEmptyContent):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func newsToDTO(post domain.NewsPost) dto.NewsResponseDTO {
	return dto.NewsResponseDTO{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
