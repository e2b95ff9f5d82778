package roster

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/logger"
)

// rosterChannel is raised by the registrations trigger with the event id as
// payload. See migrations.
const rosterChannel = "roster_changed"

// Notification is one roster-changed signal. An empty EventID means the
// underlying connection was re-established and every cached roster may be
// stale.
type Notification struct {
	EventID string
}

// Listener is the push channel the hub consumes. The production implementation
// sits on Postgres LISTEN/NOTIFY; tests feed notifications directly.
type Listener interface {
	Notifications() <-chan Notification
	Ping() error
	Close() error
}

type PQListener struct {
	pl  *pq.Listener
	out chan Notification
	log logger.Logger
}

func NewPQListener(dsn string, log logger.Logger) (*PQListener, error) {
	pl := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Error("roster listener event",
				logger.Int("type", int(ev)),
				logger.String("error", err.Error()),
			)
		}
	})

	if err := pl.Listen(rosterChannel); err != nil {
		pl.Close()
		return nil, fmt.Errorf("listen %s: %w", rosterChannel, err)
	}

	l := &PQListener{
		pl:  pl,
		out: make(chan Notification, 64),
		log: log,
	}
	go l.translate()

	return l, nil
}

// translate forwards pq notifications until the listener is closed. pq delivers
// a nil notification after a reconnect; that becomes an empty-EventID resync
// signal.
func (l *PQListener) translate() {
	defer close(l.out)

	for n := range l.pl.Notify {
		if n == nil {
			l.out <- Notification{}
			continue
		}
		l.out <- Notification{EventID: n.Extra}
	}
}

func (l *PQListener) Notifications() <-chan Notification {
	return l.out
}

func (l *PQListener) Ping() error {
	return l.pl.Ping()
}

func (l *PQListener) Close() error {
	return l.pl.Close()
}
