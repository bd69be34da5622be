package dto

type UpsertContentRequest struct {
	PageName    string  `json:"page_name" validate:"required"`
	Section     string  `json:"section" validate:"required"`
	ContentType string  `json:"content_type" validate:"omitempty,oneof=text html json image_path"`
	Content     *string `json:"content,omitempty"`
	Metadata    *string `json:"metadata,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

type ContentResponse struct {
	ID          string  `json:"id"`
	PageName    string  `json:"page_name"`
	Section     string  `json:"section"`
	ContentType string  `json:"content_type"`
	Content     *string `json:"content,omitempty"`
	Metadata    *string `json:"metadata,omitempty"`
	IsPublished bool    `json:"is_published"`
	Version     int     `json:"version"`
	UpdatedAt   string  `json:"updated_at"`
}
