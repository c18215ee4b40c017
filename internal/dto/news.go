package dto

import "time"

type NewsRequestDTO struct {
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body" validate:"required"`
}

type NewsResponseDTO struct {
	ID        int       `json:"id" example:"7"`
	AuthorID  int       `json:"author_id" example:"1"`
	Title     string    `json:"title" example:"Store maintenance window"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
