package figure

import (
	"sync"
	"time"
)

// debouncer collects figure names and flushes them once no new name arrived for delay.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, pending: make(map[string]struct{})}
}

// add schedules flush with every name added since the previous flush.
func (d *debouncer) add(names []string, flush func([]string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || len(names) == 0 {
		return
	}
	for _, n := range names {
		d.pending[n] = struct{}{}
	}
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		batch := make([]string, 0, len(d.pending))
		for n := range d.pending {
			batch = append(batch, n)
		}
		clear(d.pending)
		d.mu.Unlock()
		if len(batch) > 0 {
			flush(batch)
		}
	})
}

// stopAndWait rejects new names and waits up to timeout for a running flush.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
