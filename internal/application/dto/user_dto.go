package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=1,max=50"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"omitempty,oneof=admin user"`
	Department string `json:"department" validate:"required,min=1,max=50"`
}

// UpdateUserRequest entrada para actualizar un usuario; campos nil no cambian.
type UpdateUserRequest struct {
	Password   *string `json:"password" validate:"omitempty,min=8"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin user"`
	Department *string `json:"department" validate:"omitempty,min=1,max=50"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UserResponse salida de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
