package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/virtual-defence/vds-backend/internal/middleware"
)

// GetIPBlockStatus reports whether an IP is currently rate-limit blocked
// (admin only).
func GetIPBlockStatus(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	ip := strings.TrimSpace(r.URL.Query().Get("ip"))
	if ip == "" {
		writeMessage(w, http.StatusBadRequest, false, "ip is required")
		return
	}

	blocked, err := middleware.IsIPBlocked(ip)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to check IP")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"ip":      ip,
		"blocked": blocked,
	})
}

type unblockIPRequest struct {
	IP string `json:"ip"`
}

// UnblockIP lifts a rate-limit block before its 24h expiry (admin only).
func UnblockIP(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req unblockIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.IP) == "" {
		writeMessage(w, http.StatusBadRequest, false, "ip is required")
		return
	}

	if err := middleware.UnblockIP(strings.TrimSpace(req.IP)); err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to unblock IP")
		return
	}

	writeMessage(w, http.StatusOK, true, "IP unblocked")
}
