package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// NewChatSession starts a fresh assistant conversation and returns its
// identifier. Prior sessions stay queryable by their identifiers.
func NewChatSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"session_id": assistantService.NewSession(),
	})
}

type sendChatRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// SendChatMessage appends the user's turn and the assistant's reply. A
// completion failure still produces an assistant turn with the fixed
// failure text, so this only errors on store writes.
func SendChatMessage(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req sendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.Text) == "" {
		writeMessage(w, http.StatusBadRequest, false, "session_id and text are required")
		return
	}

	reply, err := assistantService.Send(r.Context(), req.SessionID, user.Email, req.Text)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to store message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reply":   reply,
	})
}

// GetChatMessages returns one session's messages ascending by timestamp.
func GetChatMessages(w http.ResponseWriter, r *http.Request) {
	if requireUser(w, r) == nil {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeMessage(w, http.StatusBadRequest, false, "session_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	msgs, err := assistantService.History(ctx, sessionID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to load messages")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": msgs,
		"count":    len(msgs),
	})
}

// GetChatLogs returns chat records across all sessions for the admin
// console, newest first, optionally filtered by a search string.
func GetChatLogs(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	msgs, err := chatMessages.Search(ctx, r.URL.Query().Get("search"))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to load chat logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": msgs,
		"count":    len(msgs),
	})
}
