package domain

// RequestMeta carries caller context (for audit traceability only) through the
// service layer. Zero value is valid: audit columns are nullable.
type RequestMeta struct {
	IP        string
	UserAgent string
}
