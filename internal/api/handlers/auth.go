package handlers

import (
	"net/http"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/request"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/validation"
)

// AuthHandler handles login and session lookups.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginResponse carries a session token and the identity it stands for.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	StoreID  string `json:"storeId"`
}

// Login handles POST requests exchanging credentials for a session token.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, password)
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if the body is invalid
// Error: 401 Unauthorized if the credentials do not match
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err, "failed to log in")
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Username: user.Username,
		StoreID:  user.StoreID,
	})
}

// Me returns the user behind the current session.
//
// Endpoint: GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(r.Context(), session)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve user")
		return
	}
	response.RespondJSON(w, http.StatusOK, user)
}
