// Package feed fans finished decisions out to live websocket subscribers.
// Publishing never blocks the decision path: a subscriber whose buffer is
// full loses the message and the hub counts the drop.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"domainbid/internal/models"
)

const writeTimeout = 5 * time.Second

// Subscriber is one attached consumer. Read decisions from C until it is
// closed by Unsubscribe.
type Subscriber struct {
	ch chan models.FinalDecision
}

// C is the subscriber's decision stream.
func (s *Subscriber) C() <-chan models.FinalDecision {
	return s.ch
}

// Hub is the broadcast point between the decision engine and websocket
// clients.
type Hub struct {
	logger *zap.Logger
	buffer int

	mu   sync.Mutex
	subs map[*Subscriber]struct{}

	published atomic.Int64
	dropped   atomic.Int64
}

func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger: logger,
		buffer: buffer,
		subs:   make(map[*Subscriber]struct{}),
	}
}

// Subscribe attaches a new consumer with its own bounded buffer.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan models.FinalDecision, h.buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe detaches the consumer and closes its channel. Safe to call
// once per subscriber.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

// Publish offers the decision to every subscriber. A full subscriber buffer
// drops the message for that subscriber only.
func (h *Hub) Publish(dec models.FinalDecision) {
	if h == nil {
		return
	}
	h.published.Add(1)
	h.mu.Lock()
	for sub := range h.subs {
		select {
		case sub.ch <- dec:
		default:
			h.dropped.Add(1)
		}
	}
	h.mu.Unlock()
}

// Stats describes hub activity since start.
type Stats struct {
	Subscribers int   `json:"subscribers"`
	Published   int64 `json:"published"`
	Dropped     int64 `json:"dropped"`
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	n := len(h.subs)
	h.mu.Unlock()
	return Stats{
		Subscribers: n,
		Published:   h.published.Load(),
		Dropped:     h.dropped.Load(),
	}
}

// ServeWS upgrades the request and streams decisions as JSON text frames
// until the peer disconnects or a write fails.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
	if err != nil {
		h.logger.Warn("feed accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	// CloseRead discards inbound frames and cancels the context when the
	// peer goes away.
	ctx := conn.CloseRead(r.Context())
	h.logger.Debug("feed subscriber attached", zap.String("remote", r.RemoteAddr))

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return
		case dec, ok := <-sub.ch:
			if !ok {
				_ = conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			payload, err := json.Marshal(dec)
			if err != nil {
				continue
			}
			if err := h.write(ctx, conn, payload); err != nil {
				h.logger.Debug("feed write failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, payload []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, payload)
}
