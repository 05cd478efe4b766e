package controller

import "gitlab.com/tinyland/lab/theme-pulse/pkg/theme"

// Cause says what triggered a change event.
type Cause int

const (
	// CauseUser is a SetTheme, CycleTheme or ToggleLightDark call.
	CauseUser Cause = iota
	// CauseEnvironment is an environment signal change while "auto" is
	// requested.
	CauseEnvironment
)

func (c Cause) String() string {
	switch c {
	case CauseUser:
		return "user"
	case CauseEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// ChangeEvent is delivered to subscribers after the effective theme has
// been applied. Theme is always concrete, never "auto".
type ChangeEvent struct {
	Theme     theme.ID
	Requested theme.ID
	Cause     Cause
}

type subscriber struct {
	id int
	fn func(ChangeEvent)
}

// Subscribe registers fn for change events and returns a function that
// removes it. The returned function is safe to call more than once, also
// from inside fn. A handler removed while an event is being delivered does
// not receive that event.
func (c *Controller) Subscribe(fn func(ChangeEvent)) func() {
	if fn == nil {
		return func() {}
	}
	c.nextSubID++
	id := c.nextSubID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	return func() { c.unsubscribe(id) }
}

// Subscribers returns the number of registered handlers.
func (c *Controller) Subscribers() int {
	return len(c.subscribers)
}

func (c *Controller) unsubscribe(id int) {
	for i, s := range c.subscribers {
		if s.id == id {
			c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
			return
		}
	}
}

// notify delivers one computed event to a snapshot of the subscribers.
func (c *Controller) notify(ev ChangeEvent) {
	snapshot := make([]subscriber, len(c.subscribers))
	copy(snapshot, c.subscribers)
	for _, s := range snapshot {
		if !c.subscribed(s.id) {
			continue
		}
		s.fn(ev)
	}
}

func (c *Controller) subscribed(id int) bool {
	for _, s := range c.subscribers {
		if s.id == id {
			return true
		}
	}
	return false
}
