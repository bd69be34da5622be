package dto

type CreateClientRequest struct {
	FullName            string  `json:"full_name" validate:"required"`
	Phone               *string `json:"phone,omitempty"`
	Email               *string `json:"email,omitempty" validate:"omitempty,email"`
	Address             *string `json:"address,omitempty"`
	PersonalDataConsent bool    `json:"personal_data_consent"`
	Notes               *string `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	FullName            string  `json:"full_name,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	Email               *string `json:"email,omitempty" validate:"omitempty,email"`
	Address             *string `json:"address,omitempty"`
	PersonalDataConsent *bool   `json:"personal_data_consent,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

type ClientResponse struct {
	ID                  string  `json:"id"`
	ClientCode          string  `json:"client_code"`
	FullName            string  `json:"full_name"`
	Phone               *string `json:"phone,omitempty"`
	Email               *string `json:"email,omitempty"`
	Address             *string `json:"address,omitempty"`
	PersonalDataConsent bool    `json:"personal_data_consent"`
	ConsentDate         *string `json:"consent_date,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	IsActive            bool    `json:"is_active"`
	CreatedAt           string  `json:"created_at"`
}

type ClientFilter struct {
	Search string `form:"search"`
	Active string `form:"active"` // "false" | "all" | default activos
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type ClientListResponse struct {
	Data  []ClientResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
