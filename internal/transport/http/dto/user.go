package dto

import "blogcaste/internal/domain/models"

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Token   string       `json:"token,omitempty"`
}

type UserListResponse struct {
	Success    bool          `json:"success"`
	Users      []models.User `json:"users"`
	TotalCount int           `json:"totalCount"`
}
