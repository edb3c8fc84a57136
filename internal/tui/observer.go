package tui

import tea "github.com/charmbracelet/bubbletea"

// Notifier bridges out-of-band events (loading edges from the request
// tracker, session expiry from the HTTP client, activity poll updates)
// into the Bubble Tea message loop via a channel.
type Notifier struct {
	ch chan tea.Msg
}

// NewNotifier creates a notifier with a small buffer so event producers
// never block.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan tea.Msg, 16)}
}

// LoadingChanged forwards a loading edge (non-blocking if full).
func (n *Notifier) LoadingChanged(busy bool) {
	n.send(LoadingMsg{Busy: busy})
}

// SessionExpired forwards a forced-logout event.
func (n *Notifier) SessionExpired() {
	n.send(SessionExpiredMsg{})
}

// ActivityUpdated forwards a background poll result.
func (n *Notifier) ActivityUpdated(msg ActivityUpdatedMsg) {
	n.send(msg)
}

func (n *Notifier) send(msg tea.Msg) {
	select {
	case n.ch <- msg:
	default: // drop rather than block the producer
	}
}

// ListenCmd returns a command that waits for the next notifier event.
// The app re-issues it after every delivery to keep the pump running.
func (n *Notifier) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		return <-n.ch
	}
}
