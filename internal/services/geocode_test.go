package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Lahore", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"31.5497","lon":"74.3436"},{"lat":"0","lon":"0"}]`))
	}))
	defer server.Close()

	svc := NewGeocodeService(server.URL)
	loc, err := svc.Resolve(context.Background(), "Lahore")
	require.NoError(t, err)
	assert.InDelta(t, 31.5497, loc.Lat, 0.0001)
	assert.InDelta(t, 74.3436, loc.Lon, 0.0001)
}

func TestGeocodeResolveNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := NewGeocodeService(server.URL)
	_, err := svc.Resolve(context.Background(), "Nowhereville")
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestGeocodeResolveUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewGeocodeService(server.URL)
	_, err := svc.Resolve(context.Background(), "Lahore")
	assert.Error(t, err)
}
