package devserver

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ReloadMessage is the event data that tells a viewer to reload.
const ReloadMessage = "reload"

// Hub fans messages out to subscribed viewers. Only the Run goroutine
// touches the subscriber set; everything else talks to it by channel.
type Hub struct {
	subscribe   chan chan string
	unsubscribe chan chan string
	publish     chan string
	done        chan struct{}
	logger      *zap.Logger
}

// NewHub returns a hub. Call Run before Subscribe or Publish.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subscribe:   make(chan chan string),
		unsubscribe: make(chan chan string),
		publish:     make(chan string),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

// Run owns the subscribers until ctx is done, then closes every
// subscriber channel.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[chan string]struct{})
	defer func() {
		for c := range clients {
			close(c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.subscribe:
			clients[c] = struct{}{}
			h.logger.Debug("viewer connected", zap.Int("viewers", len(clients)))
		case c := <-h.unsubscribe:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c)
				h.logger.Debug("viewer disconnected", zap.Int("viewers", len(clients)))
			}
		case msg := <-h.publish:
			for c := range clients {
				// A viewer with a message already queued will reload anyway.
				select {
				case c <- msg:
				default:
				}
			}
			h.logger.Debug("message published", zap.String("message", msg), zap.Int("viewers", len(clients)))
		}
	}
}

// Subscribe registers a viewer. The returned channel is closed by cancel or
// when the hub stops. Once the hub has stopped, the channel comes back
// already closed.
func (h *Hub) Subscribe() (events <-chan string, cancel func()) {
	c := make(chan string, 1)
	select {
	case h.subscribe <- c:
	case <-h.done:
		close(c)
		return c, func() {}
	}

	var once sync.Once
	return c, func() {
		once.Do(func() {
			select {
			case h.unsubscribe <- c:
			case <-h.done:
			}
		})
	}
}

// Publish sends msg to every current viewer. It is a no-op once the hub
// has stopped.
func (h *Hub) Publish(msg string) {
	select {
	case h.publish <- msg:
	case <-h.done:
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
