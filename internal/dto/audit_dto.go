package dto

type AuditFilter struct {
	EmployeeID string `form:"employee_id"`
	Action     string `form:"action"`
	Table      string `form:"table"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type AuditEntryResponse struct {
	ID         string  `json:"id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Action     string  `json:"action"`
	TableName  *string `json:"table_name,omitempty"`
	RecordID   *string `json:"record_id,omitempty"`
	OldValues  *string `json:"old_values,omitempty"`
	NewValues  *string `json:"new_values,omitempty"`
	IPAddress  *string `json:"ip_address,omitempty"`
	UserAgent  *string `json:"user_agent,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type AuditListResponse struct {
	Data  []AuditEntryResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
