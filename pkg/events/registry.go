package events

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sendBuffer bounds how far a subscriber can fall behind before it is
// dropped.
const sendBuffer = 8

// Subscriber is one live dashboard connection. Serialized snapshots arrive on
// C; the registry closes C when the subscriber is removed.
type Subscriber struct {
	ID string
	C  chan []byte
}

// Registry tracks live dashboard connections and fans store changes out to
// them. Delivery is best-effort and in-process only.
type Registry struct {
	mu     sync.Mutex
	subs   map[string]*Subscriber
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		subs:   make(map[string]*Subscriber),
		logger: logger,
	}
}

// Subscribe registers a new connection and returns it. The caller must
// eventually Unsubscribe with the returned id.
func (r *Registry) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID: uuid.NewString(),
		C:  make(chan []byte, sendBuffer),
	}
	r.mu.Lock()
	r.subs[sub.ID] = sub
	r.mu.Unlock()
	r.logger.Debug("subscriber added", zap.String("id", sub.ID))
	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Calling it for
// an id that is already gone is a no-op.
func (r *Registry) Unsubscribe(id string) {
	r.mu.Lock()
	if sub, ok := r.subs[id]; ok {
		delete(r.subs, id)
		close(sub.C)
	}
	r.mu.Unlock()
}

// Len reports how many subscribers are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Broadcast serializes payload once and hands it to every subscriber. A
// subscriber whose buffer is full is dropped so the rest still get the
// update; no error ever reaches the caller.
func (r *Registry) Broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("broadcast marshal failed", zap.Error(err))
		return
	}
	r.mu.Lock()
	for id, sub := range r.subs {
		select {
		case sub.C <- data:
		default:
			delete(r.subs, id)
			close(sub.C)
			r.logger.Warn("dropping slow subscriber", zap.String("id", id))
		}
	}
	r.mu.Unlock()
}
