package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken        string           `json:"access_token"`
	TokenType          string           `json:"token_type"`
	ExpiresIn          int              `json:"expires_in"`
	MustChangePassword bool             `json:"must_change_password"`
	User               EmployeeResponse `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type EmployeeResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Position *string `json:"position,omitempty"`
	Role     string  `json:"role"`
	IsActive bool    `json:"is_active"`
}

type CreateEmployeeRequest struct {
	Username string  `json:"username" validate:"required,min=3"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Position *string `json:"position,omitempty"`
	Role     string  `json:"role" validate:"required,oneof=admin manager content_manager cashier viewer"`
}

type UpdateEmployeeRequest struct {
	FullName string  `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Position *string `json:"position,omitempty"`
	Role     string  `json:"role,omitempty" validate:"omitempty,oneof=admin manager content_manager cashier viewer"`
	Password string  `json:"password,omitempty" validate:"omitempty,min=8"`
}
