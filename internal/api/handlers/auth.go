package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aqtareen/Taqreeb/internal/api/problem"
	"github.com/aqtareen/Taqreeb/internal/api/render"
	"github.com/aqtareen/Taqreeb/internal/domain/accounts"
	"github.com/aqtareen/Taqreeb/internal/validation"
)

type AuthService interface {
	Register(ctx context.Context, in accounts.RegisterInput) (int64, error)
	Authenticate(ctx context.Context, email, password string) (accounts.Profile, error)
}

type AuthHandler struct {
	Service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message   string `json:"message"`
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, err := h.Service.Register(r.Context(), accounts.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Password:  req.Password,
	})
	if err != nil {
		if verr, ok := validation.As(err); ok {
			problem.Write(w, r, http.StatusBadRequest, verr.Message, err)
			return
		}
		switch {
		case errors.Is(err, accounts.ErrDuplicateEmail):
			problem.Write(w, r, http.StatusBadRequest, "This email is already registered", err)
		case errors.Is(err, accounts.ErrNoTeamsAvailable):
			problem.Write(w, r, http.StatusServiceUnavailable, "Employee registration is unavailable: no teams configured", err)
		default:
			problem.Write(w, r, http.StatusInternalServerError, "An error occurred during registration", err)
		}
		return
	}

	render.JSON(w, r, http.StatusCreated, registerResponse{Message: "Registration successful", UserID: userID})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if verr, ok := validation.As(err); ok {
			problem.Write(w, r, http.StatusBadRequest, verr.Message, err)
			return
		}
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			problem.Write(w, r, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, "An error occurred during login", err)
		return
	}

	render.JSON(w, r, http.StatusOK, loginResponse{
		Message:   "Login successful",
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Role:      string(profile.Role),
	})
}
