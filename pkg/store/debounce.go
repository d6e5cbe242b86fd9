package store

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Debouncer delays writes per key until edits settle. Scheduling a key again
// before its delay elapses replaces the pending write and restarts the
// delay, so only the last write of a burst runs. Failed writes are logged
// and dropped.
type Debouncer struct {
	mu      sync.Mutex
	run     sync.Mutex
	delay   time.Duration
	pending map[string]*pendingWrite
	gen     uint64
	stopped bool
	log     *zap.Logger
}

type pendingWrite struct {
	gen   uint64
	timer *time.Timer
	write func() error
}

// NewDebouncer creates a debouncer. A nil logger discards failures.
func NewDebouncer(delay time.Duration, log *zap.Logger) *Debouncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]*pendingWrite),
		log:     log,
	}
}

// Schedule arranges for write to run once key has been quiet for the delay.
// write must not share mutable state with the caller.
func (d *Debouncer) Schedule(key string, write func() error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending[key] = &pendingWrite{
		gen:   gen,
		write: write,
		timer: time.AfterFunc(d.delay, func() {
			d.fire(key, gen)
		}),
	}
}

// Cancel drops the pending write for key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Pending is the number of writes waiting on their delay.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush runs every pending write now.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.pending
	d.pending = make(map[string]*pendingWrite)
	d.mu.Unlock()

	for key, p := range pending {
		p.timer.Stop()
		d.exec(key, p.write)
	}
}

// Stop cancels every pending write and ignores later schedules.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
	d.stopped = true
}

func (d *Debouncer) fire(key string, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok || p.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	d.exec(key, p.write)
}

func (d *Debouncer) exec(key string, write func() error) {
	d.run.Lock()
	defer d.run.Unlock()
	if err := write(); err != nil {
		d.log.Error("debounced write failed", zap.String("key", key), zap.Error(err))
	}
}
