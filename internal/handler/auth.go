package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/owakeel/golf-music-backend/internal/middleware"
	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/internal/service"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// profileResponse is the public view of an account. The password hash never
// appears here; genre and location are omitted when empty, createdAt only on
// the profile endpoint.
type profileResponse struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	UserType   model.UserType `json:"userType"`
	Genre      string         `json:"genre,omitempty"`
	Location   string         `json:"location,omitempty"`
	IsVerified bool           `json:"isVerified"`
	CreatedAt  *time.Time     `json:"createdAt,omitempty"`
}

func publicProfile(u *model.User, withCreatedAt bool) profileResponse {
	p := profileResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		UserType:   u.UserType,
		Genre:      u.Genre,
		Location:   u.Location,
		IsVerified: u.IsVerified,
	}
	if withCreatedAt {
		p.CreatedAt = &u.CreatedAt
	}
	return p
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	result, err := h.service.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Something went wrong during registration. Please try again later.")
		return
	}

	message := "Registration successful"
	if result.User.UserType.RequiresVerification() {
		message = "Registration successful. Please check your email for verification instructions."
	}

	writeSuccess(w, http.StatusCreated, message, map[string]interface{}{
		"token": result.Token,
		"user":  publicProfile(result.User, false),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}

	result, err := h.service.Login(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Something went wrong during login. Please try again later.")
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", map[string]interface{}{
		"token": result.Token,
		"user":  publicProfile(result.User, false),
	})
}

// Me handles GET /auth/me (authenticated).
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Profile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while fetching user profile.")
		return
	}

	writeSuccess(w, http.StatusOK, "User profile fetched successfully", map[string]interface{}{
		"user": publicProfile(user, true),
	})
}
