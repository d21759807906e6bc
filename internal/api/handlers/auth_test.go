package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aqtareen/Taqreeb/internal/domain/accounts"
	"github.com/aqtareen/Taqreeb/internal/storage"
	"github.com/aqtareen/Taqreeb/internal/validation"
	"github.com/stretchr/testify/require"
)

const registerBody = `{"firstName":"Sara","lastName":"Khan","email":"sara@example.com","role":"client","password":"secret1"}`

func TestAuthHandlerRegisterSuccess(t *testing.T) {
	var got accounts.RegisterInput
	h := NewAuthHandler(stubAuthService{registerFn: func(in accounts.RegisterInput) (int64, error) {
		got = in
		return 7, nil
	}})

	res := httptest.NewRecorder()
	h.Register(res, jsonRequest(http.MethodPost, "/api/register", registerBody))

	require.Equal(t, http.StatusCreated, res.Code)
	require.JSONEq(t, `{"message":"Registration successful","userId":7}`, res.Body.String())
	require.Equal(t, accounts.RegisterInput{
		FirstName: "Sara",
		LastName:  "Khan",
		Email:     "sara@example.com",
		Role:      "client",
		Password:  "secret1",
	}, got)
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        validation.New("FirstName", "First name must be at least 2 characters long"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "First name must be at least 2 characters long",
		},
		{
			name:       "duplicate email",
			err:        accounts.ErrDuplicateEmail,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "This email is already registered",
		},
		{
			name:       "no teams",
			err:        accounts.ErrNoTeamsAvailable,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Employee registration is unavailable: no teams configured",
		},
		{
			name:       "timeout",
			err:        &storage.TimeoutError{Op: "acquire connection", Err: errors.New("deadline")},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "An error occurred during registration",
		},
		{
			name:       "registration failed",
			err:        &accounts.RegistrationFailedError{Err: errors.New("disk full")},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "An error occurred during registration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(stubAuthService{registerFn: func(accounts.RegisterInput) (int64, error) {
				return 0, tt.err
			}})

			res := httptest.NewRecorder()
			h.Register(res, jsonRequest(http.MethodPost, "/api/register", registerBody))

			require.Equal(t, tt.wantStatus, res.Code)
			require.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.wantMsg), res.Body.String())
		})
	}
}

func TestAuthHandlerRegisterMalformedBody(t *testing.T) {
	h := NewAuthHandler(stubAuthService{registerFn: func(accounts.RegisterInput) (int64, error) {
		t.Fatal("service must not be called")
		return 0, nil
	}})

	res := httptest.NewRecorder()
	h.Register(res, jsonRequest(http.MethodPost, "/api/register", `{"firstName":`))

	require.Equal(t, http.StatusBadRequest, res.Code)
	require.JSONEq(t, `{"message":"Invalid request body"}`, res.Body.String())
}

func TestAuthHandlerRegisterBodyTooLarge(t *testing.T) {
	h := NewAuthHandler(stubAuthService{registerFn: func(accounts.RegisterInput) (int64, error) {
		t.Fatal("service must not be called")
		return 0, nil
	}})

	req := jsonRequest(http.MethodPost, "/api/register", `{"firstName":"`+strings.Repeat("a", 64)+`"}`)
	res := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(res, req.Body, 16)
	h.Register(res, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, res.Code)
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	h := NewAuthHandler(stubAuthService{authenticateFn: func(email, password string) (accounts.Profile, error) {
		require.Equal(t, "sara@example.com", email)
		require.Equal(t, "secret1", password)
		return accounts.Profile{UserID: 3, FirstName: "Sara", LastName: "Khan", Email: email, Role: accounts.RoleEmployee}, nil
	}})

	res := httptest.NewRecorder()
	h.Login(res, jsonRequest(http.MethodPost, "/api/login", `{"email":"sara@example.com","password":"secret1"}`))

	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{
		"message":"Login successful",
		"userId":3,
		"firstName":"Sara",
		"lastName":"Khan",
		"email":"sara@example.com",
		"role":"employee"
	}`, res.Body.String())
}

func TestAuthHandlerLoginErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing fields", err: validation.New("credentials", "Email and password are required"), wantStatus: http.StatusBadRequest, wantMsg: "Email and password are required"},
		{name: "bad credentials", err: accounts.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid email or password"},
		{name: "storage failure", err: &storage.QueryFailedError{Op: "find user", Err: errors.New("boom")}, wantStatus: http.StatusInternalServerError, wantMsg: "An error occurred during login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(stubAuthService{authenticateFn: func(string, string) (accounts.Profile, error) {
				return accounts.Profile{}, tt.err
			}})

			res := httptest.NewRecorder()
			h.Login(res, jsonRequest(http.MethodPost, "/api/login", `{"email":"a@b.c","password":"x"}`))

			require.Equal(t, tt.wantStatus, res.Code)
			require.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.wantMsg), res.Body.String())
			require.NotContains(t, res.Body.String(), "boom")
		})
	}
}
