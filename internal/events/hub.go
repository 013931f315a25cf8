package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/virtual-defence/vds-backend/internal/database"
)

// Hub fans change events out to in-process listeners. Each listener holds a
// buffered channel plus the cancellation handle returned by Subscribe;
// callers must invoke the handle on teardown so unmounted views stop
// receiving updates.
type Hub struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]*listener
}

type listener struct {
	collections map[string]struct{} // empty set means every collection
	ch          chan Event
}

func NewHub() *Hub {
	return &Hub{listeners: make(map[int]*listener)}
}

// DefaultHub is the per-process hub fed by the Redis subscriber.
var DefaultHub = NewHub()

// Subscribe registers a listener for the named collections (none means all)
// and returns the event channel plus an unsubscribe handle. The handle is
// idempotent and closes the channel.
func (h *Hub) Subscribe(collections ...string) (<-chan Event, func()) {
	l := &listener{
		collections: make(map[string]struct{}, len(collections)),
		ch:          make(chan Event, 32),
	}
	for _, c := range collections {
		l.collections[c] = struct{}{}
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = l
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
			close(l.ch)
		})
	}
	return l.ch, unsubscribe
}

// Broadcast delivers an event to every matching listener. Slow listeners
// drop events rather than block the feed.
func (h *Hub) Broadcast(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, l := range h.listeners {
		if len(l.collections) > 0 {
			if _, ok := l.collections[evt.Collection]; !ok {
				continue
			}
		}
		select {
		case l.ch <- evt:
		default:
		}
	}
}

var subscriberStarted sync.Once

// StartSubscriber ensures a single shared Redis listener per instance,
// feeding DefaultHub from the events:* channels.
func StartSubscriber(ctx context.Context) {
	subscriberStarted.Do(func() {
		go runSubscriber(ctx)
	})
}

func runSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; event subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.PSubscribe(ctx, "events:*")
			defer pubsub.Close()

			log.Println("✅ Change-feed subscriber started (pattern: events:*)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var evt Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					log.Printf("failed to unmarshal change event: %v", err)
					continue
				}

				DefaultHub.Broadcast(evt)
			}
		}()
	}
}
