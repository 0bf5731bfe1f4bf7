package store

import (
	"sync"

	"github.com/google/uuid"
)

// notifier is the table-invalidation broadcaster behind reactive
// queries. Mutating store methods notify the tables they touched
// after commit; every subscription watching one of those tables gets
// a signal and re-evaluates its query.
type notifier struct {
	mu      sync.RWMutex
	subs    map[string]map[uuid.UUID]chan struct{}
	cancels map[uuid.UUID]func()
}

func newNotifier() *notifier {
	return &notifier{
		subs:    make(map[string]map[uuid.UUID]chan struct{}),
		cancels: make(map[uuid.UUID]func()),
	}
}

// register creates a signal channel for a new subscription watching
// the given tables. The channel holds at most one pending signal, so
// invalidation bursts between two evaluations coalesce.
func (n *notifier) register(tables []string) (uuid.UUID, chan struct{}) {
	id := uuid.New()
	signal := make(chan struct{}, 1)

	n.mu.Lock()
	defer n.mu.Unlock()
	for _, table := range tables {
		if n.subs[table] == nil {
			n.subs[table] = make(map[uuid.UUID]chan struct{})
		}
		n.subs[table][id] = signal
	}
	return id, signal
}

func (n *notifier) setCancel(id uuid.UUID, cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancels[id] = cancel
}

func (n *notifier) unregister(id uuid.UUID, tables []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.cancels, id)
	for _, table := range tables {
		if subs, ok := n.subs[table]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(n.subs, table)
			}
		}
	}
}

// notify signals every subscription watching any of the tables. Sends
// never block the mutating caller.
func (n *notifier) notify(tables ...string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, table := range tables {
		for _, signal := range n.subs[table] {
			select {
			case signal <- struct{}{}:
			default:
			}
		}
	}
}

// closeAll cancels every live subscription. Called from DB.Close.
func (n *notifier) closeAll() {
	n.mu.Lock()
	cancels := make([]func(), 0, len(n.cancels))
	for _, cancel := range n.cancels {
		cancels = append(cancels, cancel)
	}
	n.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Subscription is a live query result. C emits an initial snapshot
// immediately after subscription and a fresh snapshot after every
// committed change to the watched tables. Each subscription is
// independent; Cancel stops emission promptly and is idempotent.
type Subscription[T any] struct {
	id   uuid.UUID
	C    <-chan T
	once sync.Once
	stop func()
}

// Cancel ends the subscription. No further snapshots are emitted and
// the emission channel is closed.
func (s *Subscription[T]) Cancel() {
	s.once.Do(s.stop)
}

// observe runs query on its own goroutine: once immediately, then
// again after each invalidation of the watched tables. Every emission
// is one consistent post-commit snapshot.
func observe[T any](db *DB, tables []string, query func() (T, error)) *Subscription[T] {
	id, signal := db.notifier.register(tables)
	out := make(chan T, 1)
	done := make(chan struct{})

	sub := &Subscription[T]{
		id: id,
		C:  out,
		stop: func() {
			db.notifier.unregister(id, tables)
			close(done)
		},
	}
	db.notifier.setCancel(id, sub.Cancel)

	go func() {
		defer close(out)
		for {
			snapshot, err := query()
			if err != nil {
				db.log.Warn("reactive query failed", "tables", tables, "error", err)
			} else {
				select {
				case out <- snapshot:
				case <-done:
					return
				}
			}
			select {
			case <-signal:
			case <-done:
				return
			}
		}
	}()

	return sub
}
