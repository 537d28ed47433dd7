package dto

import "blogcaste/internal/domain/models"

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CategoryResponse struct {
	Success  bool             `json:"success"`
	Category *models.Category `json:"category"`
}

type CategoryListResponse struct {
	Success    bool              `json:"success"`
	Categories []models.Category `json:"categories"`
	TotalCount int               `json:"totalCount"`
}
