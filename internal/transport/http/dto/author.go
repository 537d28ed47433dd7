package dto

import "blogcaste/internal/domain/models"

type CreateAuthorRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Bio       string `json:"bio" validate:"omitempty,max=1000"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type UpdateAuthorRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

type AuthorResponse struct {
	Success bool           `json:"success"`
	Author  *models.Author `json:"author"`
}

type AuthorListResponse struct {
	Success    bool            `json:"success"`
	Authors    []models.Author `json:"authors"`
	TotalCount int             `json:"totalCount"`
}
