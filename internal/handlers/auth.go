package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/virtual-defence/vds-backend/internal/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and opens a session.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid request body")
		return
	}

	user, err := userService.Signup(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		writeMessage(w, http.StatusConflict, false, "email already registered")
		return
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeMessage(w, http.StatusBadRequest, false, "email and password are required")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to create account")
		return
	}

	token, err := services.CreateSession(r.Context(), user.UID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Signin verifies credentials and opens a session.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid request body")
		return
	}

	user, err := userService.Signin(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeMessage(w, http.StatusUnauthorized, false, "invalid email or password")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "sign-in failed")
		return
	}

	token, err := services.CreateSession(r.Context(), user.UID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Me returns the calling user.
func Me(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// Signout tears down the caller's session.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeMessage(w, http.StatusBadRequest, false, "missing session token")
		return
	}
	if err := services.InvalidateSession(r.Context(), token); err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to sign out")
		return
	}
	writeMessage(w, http.StatusOK, true, "signed out")
}
