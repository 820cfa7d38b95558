package inputfilter

import (
	"sync"
	"time"
)

// TTL is how long a keystroke rejection message stays visible before it
// clears itself.
const TTL = 2000 * time.Millisecond

// AfterFunc schedules a one-shot callback; it exists so tests can substitute
// a deterministic scheduler for time.AfterFunc.
type AfterFunc func(d time.Duration, fn func())

func stdAfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

type transientEntry struct {
	message string
	gen     uint64
}

// TransientErrors is a field-keyed store of self-expiring advisory messages.
// Every Set schedules an uncancelled one-shot timer; generation counters make
// a stale timer firing after a newer rejection a harmless no-op, which is
// what gives rapid repeated rejections a refreshed countdown. Generations are
// kept per field across entry deletion so a pending stale timer can never
// match a freshly recreated entry.
type TransientErrors struct {
	mu      sync.Mutex
	entries map[string]transientEntry
	gens    map[string]uint64
	after   AfterFunc
	ttl     time.Duration
}

// NewTransientErrors builds a store with the standard 2-second lifetime.
func NewTransientErrors() *TransientErrors {
	return &TransientErrors{
		entries: make(map[string]transientEntry),
		gens:    make(map[string]uint64),
		after:   stdAfterFunc,
		ttl:     TTL,
	}
}

// WithScheduler swaps the timer factory. Passing nil restores the default.
func (t *TransientErrors) WithScheduler(after AfterFunc) *TransientErrors {
	if after == nil {
		after = stdAfterFunc
	}
	t.mu.Lock()
	t.after = after
	t.mu.Unlock()
	return t
}

// Set records a message for the field and schedules its expiry. Entries for
// other fields are untouched.
func (t *TransientErrors) Set(field, message string) {
	t.mu.Lock()
	t.gens[field]++
	entry := transientEntry{message: message, gen: t.gens[field]}
	t.entries[field] = entry
	after := t.after
	ttl := t.ttl
	t.mu.Unlock()

	gen := entry.gen
	after(ttl, func() {
		t.expire(field, gen)
	})
}

// expire clears the entry only when no newer Set replaced it. Clearing an
// already-cleared field is idempotent.
func (t *TransientErrors) expire(field string, gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if entry, ok := t.entries[field]; ok && entry.gen == gen {
		delete(t.entries, field)
	}
}

// Get returns the live message for a field, if any.
func (t *TransientErrors) Get(field string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[field]
	return entry.message, ok
}

// Messages snapshots the live entries as a plain field→message map.
func (t *TransientErrors) Messages() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]string, len(t.entries))
	for field, entry := range t.entries {
		out[field] = entry.message
	}
	return out
}
