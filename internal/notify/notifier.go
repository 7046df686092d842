// Package notify implements the single-slot notification banner: at most one
// visible message, hidden automatically after its display duration.
package notify

import (
	"sync"
	"time"
)

// Kind distinguishes the two banner styles.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultDuration is applied when Show receives a non-positive duration.
const DefaultDuration = 3 * time.Second

// Notification is the currently visible message.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Notifier is a timed state machine: idle -> showing -> idle. Showing a new
// message while one is visible cancels the pending hide timer and replaces
// the message immediately; the displaced message's completion action never
// runs. The completion action of a message that displays for its full
// duration runs exactly once.
type Notifier struct {
	defaultDuration time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	current *Notification
	closed  bool
}

func New() *Notifier {
	return &Notifier{defaultDuration: DefaultDuration}
}

// NewWithDuration overrides the fallback display duration used when Show
// receives a non-positive one.
func NewWithDuration(d time.Duration) *Notifier {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Notifier{defaultDuration: d}
}

// Show replaces the visible message and schedules its hide. onDone may be nil.
func (n *Notifier) Show(kind Kind, message string, duration time.Duration, onDone func()) {
	if duration <= 0 {
		duration = n.defaultDuration
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	if n.timer != nil {
		n.timer.Stop()
	}

	n.gen++
	gen := n.gen
	n.current = &Notification{Kind: kind, Message: message}
	n.timer = time.AfterFunc(duration, func() {
		n.expire(gen, onDone)
	})
}

func (n *Notifier) expire(gen uint64, onDone func()) {
	n.mu.Lock()
	if n.closed || gen != n.gen {
		// superseded; a newer message owns the slot now
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	n.mu.Unlock()

	if onDone != nil {
		onDone()
	}
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Close cancels any pending hide timer; pending completion actions never run.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
	n.gen++
}
