package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// Event is a server-sent event pushed to the players of a game.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// subscriber is a single SSE connection.
type subscriber struct {
	ch     chan []byte
	gameID string
}

// Broadcaster fans events out to the SSE subscribers of each game.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[*subscriber]struct{}),
	}
}

// Subscribe registers a subscriber for a game.
func (b *Broadcaster) Subscribe(gameID string) *subscriber {
	sub := &subscriber{
		ch:     make(chan []byte, sseChannelBuffer),
		gameID: gameID,
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call twice.
func (b *Broadcaster) Unsubscribe(sub *subscriber) {
	b.mu.Lock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
	b.mu.Unlock()
}

// Publish sends an event to every subscriber of a game. Subscribers with a
// full buffer miss the event.
func (b *Broadcaster) Publish(gameID string, evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Str("event", evt.Type).Msg("marshal event")
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if sub.gameID != gameID {
			continue
		}
		select {
		case sub.ch <- data:
		default:
			log.Warn().Str("game", gameID).Str("event", evt.Type).Msg("slow subscriber, event dropped")
		}
	}
}

// Subscribers returns the number of subscribers of a game.
func (b *Broadcaster) Subscribers(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for sub := range b.subs {
		if sub.gameID == gameID {
			n++
		}
	}
	return n
}

// ServeSSE streams a game's events until the client goes away. initial, when
// non-nil, is sent first.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, gameID string, initial *Event) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := b.Subscribe(gameID)
	defer b.Unsubscribe(sub)

	logger := hlog.FromRequest(r)
	logger.Debug().Str("game", gameID).Msg("sse subscriber connected")
	defer func() {
		logger.Debug().Str("game", gameID).Msg("sse subscriber gone")
	}()

	if initial != nil {
		data, err := json.Marshal(initial)
		if err == nil {
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-sub.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
