package roster

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type fakeListener struct {
	ch     chan Notification
	mu     sync.Mutex
	pings  int
	closed bool
}

func newFakeListener() *fakeListener {
	return &fakeListener{ch: make(chan Notification, 16)}
}

func (l *fakeListener) Notifications() <-chan Notification { return l.ch }

func (l *fakeListener) Ping() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pings++
	return nil
}

func (l *fakeListener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

func (l *fakeListener) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// fakeLister serves settable roster snapshots per event.
type fakeLister struct {
	mu      sync.Mutex
	rosters map[string][]*domain.Registration
}

func newFakeLister() *fakeLister {
	return &fakeLister{rosters: make(map[string][]*domain.Registration)}
}

func (f *fakeLister) set(eventID string, regs ...*domain.Registration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rosters[eventID] = regs
}

func (f *fakeLister) ListByEvent(_ context.Context, eventID string) ([]*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rosters[eventID], nil
}

func newTestHub(t *testing.T) (*fakeLister, *fakeListener, *Hub) {
	t.Helper()
	lister := newFakeLister()
	listener := newFakeListener()
	hub := New(lister, listener, time.Minute, 4, newTestLogger(t))
	return lister, listener, hub
}

func recvSnapshot(t *testing.T, sub *Subscription) []*domain.Registration {
	t.Helper()
	select {
	case snap, ok := <-sub.Updates():
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for roster snapshot")
		return nil
	}
}

func TestHub_SubscribeDeliversInitialSnapshot(t *testing.T) {
	lister, _, hub := newTestHub(t)
	lister.set("e1", &domain.Registration{ID: "r1", EventID: "e1", Identity: "a@x.com"})

	sub, err := hub.Subscribe(context.Background(), "e1")
	require.NoError(t, err)
	defer sub.Close()

	snap := recvSnapshot(t, sub)
	require.Len(t, snap, 1)
	assert.Equal(t, "r1", snap[0].ID)
}

func TestHub_NotificationFansOutToSubscribers(t *testing.T) {
	lister, listener, hub := newTestHub(t)
	lister.set("e1", &domain.Registration{ID: "r1", EventID: "e1", Status: domain.StatusPending})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Start(ctx)

	sub1, err := hub.Subscribe(ctx, "e1")
	require.NoError(t, err)
	defer sub1.Close()
	sub2, err := hub.Subscribe(ctx, "e1")
	require.NoError(t, err)
	defer sub2.Close()

	recvSnapshot(t, sub1)
	recvSnapshot(t, sub2)

	// A write lands: the store notifies, every device gets the new snapshot.
	lister.set("e1", &domain.Registration{ID: "r1", EventID: "e1", Status: domain.StatusCheckedIn})
	listener.ch <- Notification{EventID: "e1"}

	for _, sub := range []*Subscription{sub1, sub2} {
		snap := recvSnapshot(t, sub)
		require.Len(t, snap, 1)
		assert.Equal(t, domain.StatusCheckedIn, snap[0].Status)
	}
}

func TestHub_CloseStopsDelivery(t *testing.T) {
	lister, listener, hub := newTestHub(t)
	lister.set("e1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Start(ctx)

	sub, err := hub.Subscribe(ctx, "e1")
	require.NoError(t, err)
	recvSnapshot(t, sub)

	sub.Close()

	_, ok := <-sub.Updates()
	assert.False(t, ok, "channel should be closed")

	// Further notifications must not panic or deliver anywhere.
	listener.ch <- Notification{EventID: "e1"}
	time.Sleep(50 * time.Millisecond)
}

func TestHub_SwitchingEventsReplacesSubscription(t *testing.T) {
	lister, listener, hub := newTestHub(t)
	lister.set("e1", &domain.Registration{ID: "r1", EventID: "e1"})
	lister.set("e2", &domain.Registration{ID: "r2", EventID: "e2"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Start(ctx)

	sub1, err := hub.Subscribe(ctx, "e1")
	require.NoError(t, err)
	recvSnapshot(t, sub1)

	// Device switches events: old stream torn down before the new one opens.
	sub1.Close()
	sub2, err := hub.Subscribe(ctx, "e2")
	require.NoError(t, err)
	defer sub2.Close()

	snap := recvSnapshot(t, sub2)
	require.Len(t, snap, 1)
	assert.Equal(t, "r2", snap[0].ID)

	// Old event changes; the closed stream stays silent.
	listener.ch <- Notification{EventID: "e1"}
	select {
	case _, ok := <-sub1.Updates():
		assert.False(t, ok)
	case <-time.After(100 * time.Millisecond):
	}

	select {
	case snap := <-sub2.Updates():
		t.Fatalf("unexpected delivery on e2 stream: %v", snap)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_SnapshotFallsBackToStore(t *testing.T) {
	lister, _, hub := newTestHub(t)
	lister.set("e1", &domain.Registration{ID: "r1", EventID: "e1"})

	snap, err := hub.Snapshot(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, snap, 1)

	// Cached now; store changes are not visible until a notification lands.
	lister.set("e1")
	snap, err = hub.Snapshot(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, snap, 1)
}

func TestHub_ReconnectRefreshesCachedRosters(t *testing.T) {
	lister, listener, hub := newTestHub(t)
	lister.set("e1", &domain.Registration{ID: "r1", EventID: "e1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Start(ctx)

	sub, err := hub.Subscribe(ctx, "e1")
	require.NoError(t, err)
	defer sub.Close()
	recvSnapshot(t, sub)

	// Connection drop: pq surfaces a nil notification, everything cached is
	// reloaded.
	lister.set("e1",
		&domain.Registration{ID: "r1", EventID: "e1"},
		&domain.Registration{ID: "r2", EventID: "e1"},
	)
	listener.ch <- Notification{}

	snap := recvSnapshot(t, sub)
	assert.Len(t, snap, 2)
}

func TestHub_SlowSubscriberGetsLatestSnapshot(t *testing.T) {
	lister := newFakeLister()
	listener := newFakeListener()
	hub := New(lister, listener, time.Minute, 1, newTestLogger(t))

	lister.set("e1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Start(ctx)

	sub, err := hub.Subscribe(ctx, "e1")
	require.NoError(t, err)
	defer sub.Close()

	// Never reading between deliveries: the buffered snapshot is replaced,
	// the hub never blocks.
	for i := 1; i <= 3; i++ {
		regs := make([]*domain.Registration, i)
		for j := range regs {
			regs[j] = &domain.Registration{ID: string(rune('a' + j)), EventID: "e1"}
		}
		lister.set("e1", regs...)
		listener.ch <- Notification{EventID: "e1"}
		time.Sleep(20 * time.Millisecond)
	}

	snap := recvSnapshot(t, sub)
	assert.Len(t, snap, 3)
}

func TestHub_ShutdownClosesEverything(t *testing.T) {
	lister, listener, hub := newTestHub(t)
	lister.set("e1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Start(ctx)
		close(done)
	}()

	sub, err := hub.Subscribe(ctx, "e1")
	require.NoError(t, err)
	recvSnapshot(t, sub)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, ok := <-sub.Updates()
	assert.False(t, ok, "subscription should be closed on shutdown")
	assert.True(t, listener.isClosed())

	// Close after shutdown stays a no-op.
	sub.Close()
}
