package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/virtual-defence/vds-backend/internal/services"
)

// GetStations returns the seeded recovery stations for the portal map.
func GetStations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := stations.GetAll(ctx)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to fetch stations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"stations": list,
		"count":    len(list),
	})
}

// GeocodeSearch resolves a place name to coordinates for map recentering.
// An unknown place is a 404; an upstream failure degrades to a message.
func GeocodeSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeMessage(w, http.StatusBadRequest, false, "q is required")
		return
	}

	pos, err := geocodeService.Resolve(r.Context(), query)
	if errors.Is(err, services.ErrPlaceNotFound) {
		writeMessage(w, http.StatusNotFound, false, "location not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusBadGateway, false, "geocoding lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"position": pos,
	})
}
