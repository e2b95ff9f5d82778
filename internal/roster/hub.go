package roster

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type registrationLister interface {
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
}

// Hub fans live roster snapshots out to every subscribed volunteer device.
// Each write to a roster lands as a NOTIFY in the listener; the hub reloads
// that event's roster and delivers the full snapshot to all subscribers, which
// is how concurrent scanners stay consistent without locking.
type Hub struct {
	regs         registrationLister
	listener     Listener
	pingInterval time.Duration
	buffer       int
	log          logger.Logger

	mu    sync.RWMutex
	subs  map[string]map[*Subscription]struct{}
	cache map[string][]*domain.Registration
}

func New(
	regs registrationLister,
	listener Listener,
	pingInterval time.Duration,
	buffer int,
	log logger.Logger,
) *Hub {
	return &Hub{
		regs:         regs,
		listener:     listener,
		pingInterval: pingInterval,
		buffer:       buffer,
		log:          log,
		subs:         make(map[string]map[*Subscription]struct{}),
		cache:        make(map[string][]*domain.Registration),
	}
}

// Start runs the dispatch loop until ctx is cancelled. The periodic ping keeps
// the listener connection honest; a dropped connection surfaces as a resync
// notification.
func (h *Hub) Start(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	h.log.Info("roster hub started",
		logger.Duration("ping_interval", h.pingInterval),
	)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case <-ticker.C:
			if err := h.listener.Ping(); err != nil {
				h.log.Error("roster listener ping failed",
					logger.String("error", err.Error()),
				)
			}
		case n, ok := <-h.listener.Notifications():
			if !ok {
				h.shutdown()
				return
			}
			h.dispatch(ctx, n)
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, n Notification) {
	if n.EventID != "" {
		h.refresh(ctx, n.EventID)
		return
	}

	// Reconnect: anything cached may have changed while we were away.
	h.mu.RLock()
	eventIDs := make([]string, 0, len(h.cache))
	for id := range h.cache {
		eventIDs = append(eventIDs, id)
	}
	h.mu.RUnlock()

	for _, id := range eventIDs {
		h.refresh(ctx, id)
	}
}

func (h *Hub) refresh(ctx context.Context, eventID string) {
	snapshot, err := h.regs.ListByEvent(ctx, eventID)
	if err != nil {
		h.log.Error("roster refresh failed",
			logger.String("event_id", eventID),
			logger.String("error", err.Error()),
		)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.cache[eventID] = snapshot
	for sub := range h.subs[eventID] {
		sub.deliver(snapshot)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, subs := range h.subs {
		for sub := range subs {
			sub.closeLocked()
		}
	}
	h.subs = make(map[string]map[*Subscription]struct{})

	if err := h.listener.Close(); err != nil {
		h.log.Error("roster listener close failed",
			logger.String("error", err.Error()),
		)
	}
	h.log.Info("roster hub stopped")
}

// Subscribe registers a new roster stream for one event. The current snapshot
// is delivered immediately; Close releases the stream deterministically, so a
// device switching events never sees deltas from the old one.
func (h *Hub) Subscribe(ctx context.Context, eventID string) (*Subscription, error) {
	snapshot, err := h.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	sub := &Subscription{
		hub:     h,
		eventID: eventID,
		ch:      make(chan []*domain.Registration, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.cache[eventID] = snapshot
	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[*Subscription]struct{})
	}
	h.subs[eventID][sub] = struct{}{}
	sub.deliver(snapshot)

	return sub, nil
}

// Snapshot serves the scan matcher's in-memory roster. A cache miss falls back
// to the store so scanning works before any subscriber is attached.
func (h *Hub) Snapshot(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	h.mu.RLock()
	snapshot, ok := h.cache[eventID]
	h.mu.RUnlock()
	if ok {
		return snapshot, nil
	}

	snapshot, err := h.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	h.mu.Lock()
	h.cache[eventID] = snapshot
	h.mu.Unlock()

	return snapshot, nil
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[sub.eventID]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subs, sub.eventID)
	}
	sub.closeLocked()
}

// Subscription is one live roster stream. Updates carries full snapshots; a
// slow consumer gets its stale buffered snapshot replaced rather than blocking
// the hub.
type Subscription struct {
	hub     *Hub
	eventID string
	ch      chan []*domain.Registration
	closed  bool
}

func (s *Subscription) Updates() <-chan []*domain.Registration {
	return s.ch
}

func (s *Subscription) EventID() string {
	return s.eventID
}

// Close stops delivery and releases the stream. Idempotent.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// deliver and closeLocked are only called under the hub's lock, which is what
// keeps sends and close ordered.
func (s *Subscription) deliver(snapshot []*domain.Registration) {
	if s.closed {
		return
	}

	select {
	case s.ch <- snapshot:
		return
	default:
	}

	// Buffer full: the oldest snapshot is stale anyway.
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- snapshot:
	default:
	}
}

func (s *Subscription) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
