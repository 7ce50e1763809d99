package statusline

import "time"

// DefaultTimeout is how long a status message stays visible.
const DefaultTimeout = 5 * time.Second

// Message is a transient status message. It expires lazily: Text reports
// nothing once the message is older than the timeout.
type Message struct {
	text    string
	setAt   time.Time
	timeout time.Duration
	now     func() time.Time
}

// NewMessage creates an empty message with the given display timeout.
func NewMessage(timeout time.Duration) *Message {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Message{
		timeout: timeout,
		now:     time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (m *Message) SetClock(now func() time.Time) {
	m.now = now
}

// Set shows text, restarting the timeout.
func (m *Message) Set(text string) {
	m.text = text
	m.setAt = m.now()
}

// Clear removes the message.
func (m *Message) Clear() {
	m.text = ""
	m.setAt = time.Time{}
}

// Text returns the message if it has not expired yet.
func (m *Message) Text() (string, bool) {
	if m.setAt.IsZero() {
		return "", false
	}
	if m.now().Sub(m.setAt) > m.timeout {
		m.Clear()
		return "", false
	}
	return m.text, true
}
