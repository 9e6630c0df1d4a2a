package request

// LoginRequest represents the request body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}
