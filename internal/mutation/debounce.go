package mutation

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period applied to free-text title edits
// before the remote update is issued.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid calls per key into one callback after a quiet
// period. Scheduling a key that is already pending replaces its callback and
// restarts the timer, so only the final callback runs.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*time.Timer
	pending map[string]func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		timers:  map[string]*time.Timer{},
		pending: map[string]func(){},
	}
}

// Schedule registers fn to run after the quiet period, replacing any pending
// callback for the same key.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.pending[key] = fn
	d.timers[key] = time.AfterFunc(d.delay, func() { d.fire(key) })
}

func (d *Debouncer) fire(key string) {
	d.mu.Lock()
	fn := d.pending[key]
	delete(d.pending, key)
	delete(d.timers, key)
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs the pending callback for key immediately, if any.
func (d *Debouncer) Flush(key string) {
	d.mu.Lock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.mu.Unlock()
	d.fire(key)
}

// FlushAll drains every pending callback; used on shutdown so typed edits
// are not lost.
func (d *Debouncer) FlushAll() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	d.mu.Unlock()
	for _, k := range keys {
		d.Flush(k)
	}
}

// Cancel drops the pending callback for key without running it.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	delete(d.pending, key)
	delete(d.timers, key)
}
