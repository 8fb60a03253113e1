package auth

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/httputil"
	"github.com/redmonkez12/fintrack-api/internal/user"
	"github.com/redmonkez12/fintrack-api/internal/validation"
)

var errMissingPayload = errors.New("validated payload missing from request context")

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UserResponse wraps a profile in API responses
type UserResponse struct {
	User user.Profile `json:"user"`
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} httputil.Envelope{data=LoginResult}
// @Failure      400 {object} httputil.Envelope "Validation error"
// @Failure      401 {object} httputil.Envelope "Invalid password"
// @Failure      404 {object} httputil.Envelope "User not found"
// @Failure      429 {object} httputil.Envelope "Too many requests"
// @Router       /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := validation.Payload[LoginRequest](r)
	if !ok {
		httputil.RespondError(w, r, errMissingPayload)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "Login successful", result)
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new user account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} httputil.Envelope{data=UserResponse}
// @Failure      400 {object} httputil.Envelope "Validation error or email already registered"
// @Failure      429 {object} httputil.Envelope "Too many requests"
// @Router       /api/v1/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := validation.Payload[RegisterRequest](r)
	if !ok {
		httputil.RespondError(w, r, errMissingPayload)
		return
	}

	profile, err := h.service.Register(r.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, "Registration successful", UserResponse{User: *profile})
}

// Me returns the authenticated user's profile
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Envelope{data=UserResponse}
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Failure      404 {object} httputil.Envelope "User not found"
// @Router       /api/v1/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, apperror.Unauthorized(msgTokenRequired))
		return
	}

	profile, err := h.service.Me(r.Context(), identity.UserID)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "User profile retrieved successfully", UserResponse{User: *profile})
}

// UpdateMe applies a partial update to the authenticated user's profile
// @Summary      Update current user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Fields to update"
// @Success      200 {object} httputil.Envelope{data=UserResponse}
// @Failure      400 {object} httputil.Envelope "Validation error or email already registered"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Failure      404 {object} httputil.Envelope "User not found"
// @Router       /api/v1/auth/me [put]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, apperror.Unauthorized(msgTokenRequired))
		return
	}
	req, ok := validation.Payload[UpdateProfileRequest](r)
	if !ok {
		httputil.RespondError(w, r, errMissingPayload)
		return
	}

	profile, err := h.service.Update(r.Context(), identity.UserID, UpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "User profile updated successfully", UserResponse{User: *profile})
}

// DeleteMe removes the authenticated user's account
// @Summary      Delete current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Envelope{data=UserResponse}
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Failure      404 {object} httputil.Envelope "User not found"
// @Router       /api/v1/auth/me [delete]
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, apperror.Unauthorized(msgTokenRequired))
		return
	}

	profile, err := h.service.Delete(r.Context(), identity.UserID)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "User account deleted successfully", UserResponse{User: *profile})
}
