package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/virtual-defence/vds-backend/internal/events"
	"github.com/virtual-defence/vds-backend/internal/services"
)

var eventsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// EventsWebSocket streams live change events to a client. The client names
// the collections it wants via the `collections` query parameter (comma
// separated, empty means all). The hub subscription is torn down when the
// connection closes, so an unmounted view never receives updates.
func EventsWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		// Browser WebSocket clients cannot set headers; accept the token
		// as a query parameter too.
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}
	}
	if _, ok := services.ValidateSession(r.Context(), token); !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	var collections []string
	if raw := r.URL.Query().Get("collections"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				collections = append(collections, c)
			}
		}
	}

	conn, err := eventsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	eventsCh, unsubscribe := events.DefaultHub.Subscribe(collections...)
	defer unsubscribe()

	// Writes come from both the event forwarder and the pong reply; the
	// connection allows one concurrent writer.
	var writeMu sync.Mutex
	writeJSONLocked := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	// Writer goroutine: forward hub events to this connection.
	go func() {
		for evt := range eventsCh {
			if err := writeJSONLocked(evt); err != nil {
				return
			}
		}
	}()

	// Reader loop: consume pings and keep the read deadline fresh.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "ping" {
			_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
			_ = writeJSONLocked(map[string]string{"type": "pong"})
		}
	}
}
