// Package toast shows short notifications one at a time and dismisses each
// after its duration, in the order they were pushed.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogciprocate/shoutit/tui/common"
)

const (
	// Short is how long a regular notification stays up.
	Short = 2 * time.Second
	// Long is used for notifications that carry more to read, like errors.
	Long = 3500 * time.Millisecond
)

// Toast is one notification.
type Toast struct {
	ID       int
	Text     string
	Duration time.Duration
	IsError  bool
}

// expiredMsg is delivered when the toast with ID has been visible long enough.
type expiredMsg struct {
	ID int
}

// Model holds the visible toast and those waiting behind it.
type Model struct {
	current *Toast
	queue   []Toast
	nextID  int
	width   int
}

// New creates an empty toast queue.
func New() Model {
	return Model{}
}

// Push queues a notification. The returned command is non-nil only when the
// toast is shown right away.
func (m Model) Push(text string, d time.Duration) (Model, tea.Cmd) {
	return m.push(Toast{Text: text, Duration: d})
}

// PushError queues an error notification shown for Long.
func (m Model) PushError(text string) (Model, tea.Cmd) {
	return m.push(Toast{Text: text, Duration: Long, IsError: true})
}

func (m Model) push(t Toast) (Model, tea.Cmd) {
	m.nextID++
	t.ID = m.nextID
	// Copy so value receivers never share a backing array.
	m.queue = append(append([]Toast(nil), m.queue...), t)
	if m.current != nil {
		return m, nil
	}
	return m.advance()
}

func (m Model) advance() (Model, tea.Cmd) {
	if len(m.queue) == 0 {
		m.current = nil
		return m, nil
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	m.current = &next
	return m, expireAfter(next)
}

func expireAfter(t Toast) tea.Cmd {
	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return expiredMsg{ID: t.ID}
	})
}

// SetWidth limits rendered toasts to width cells.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Update dismisses the current toast when its timer fires. Ticks for toasts
// that are no longer current are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	exp, ok := msg.(expiredMsg)
	if !ok || m.current == nil || m.current.ID != exp.ID {
		return m, nil
	}
	return m.advance()
}

// Current returns the visible toast, if any.
func (m Model) Current() (Toast, bool) {
	if m.current == nil {
		return Toast{}, false
	}
	return *m.current, true
}

// Pending is the number of toasts waiting behind the current one.
func (m Model) Pending() int {
	return len(m.queue)
}

// View renders the visible toast or an empty string.
func (m Model) View() string {
	t, ok := m.Current()
	if !ok {
		return ""
	}
	text := common.Truncate(t.Text, m.width-2)
	if t.IsError {
		return common.ToastStyle.Inherit(common.ErrorStyle).Render(text)
	}
	return common.ToastStyle.Render(text)
}
