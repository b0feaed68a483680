package service

import (
	"sync"
	"time"
)

// A Toast is a message that clears itself after a delay.
//
// The zero value is ready to use.
type Toast struct {
	mu    sync.Mutex
	text  string
	gen   uint64
	timer *time.Timer
}

// Show replaces the current text. A non-positive ttl keeps the text until
// the next Show or Clear.
func (t *Toast) Show(text string, ttl time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	t.text = text

	if ttl <= 0 {
		return
	}

	gen := t.gen
	t.timer = time.AfterFunc(ttl, func() { t.expire(gen) })
}

func (t *Toast) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	t.text = ""
}

func (t *Toast) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

func (t *Toast) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// superseded by a later Show
	if t.gen != gen {
		return
	}
	t.text = ""
	t.timer = nil
}

func (t *Toast) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
