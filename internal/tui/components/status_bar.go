package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/adlens/adlens/internal/tui/styles"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StatusBar is the single footer line: loading spinner, transient status
// message, unread badge, and the signed-in account.
type StatusBar struct {
	width    int
	message  string
	isError  bool
	loading  bool
	frame    int
	unread   int
	userName string
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the render width.
func (s *StatusBar) SetSize(width int) { s.width = width }

// SetMessage sets the transient status text.
func (s *StatusBar) SetMessage(msg string, isError bool) {
	s.message = msg
	s.isError = isError
}

// ClearMessage removes the transient status text.
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.isError = false
}

// SetLoading toggles the spinner.
func (s *StatusBar) SetLoading(loading bool) { s.loading = loading }

// Tick advances the spinner animation.
func (s *StatusBar) Tick() { s.frame++ }

// SetUnread sets the activity unread count.
func (s *StatusBar) SetUnread(n int) { s.unread = n }

// SetUser sets the signed-in account label.
func (s *StatusBar) SetUser(name string) { s.userName = name }

// View renders the bar.
func (s *StatusBar) View() string {
	var left string
	switch {
	case s.loading:
		spinner := styles.SpinnerStyle.Render(spinnerFrames[s.frame%len(spinnerFrames)])
		left = spinner + " " + styles.DimStyle.Render("loading...")
		if s.message != "" {
			left = spinner + " " + s.renderMessage()
		}
	case s.message != "":
		left = s.renderMessage()
	default:
		left = styles.DimStyle.Render("? help  q quit")
	}

	var right string
	if s.unread > 0 {
		right = styles.UnreadBadgeStyle.Render(fmt.Sprintf("%d new", s.unread)) + " "
	}
	if s.userName != "" {
		right += styles.DimStyle.Render(s.userName)
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + styles.Pad("", gap) + right
}

func (s *StatusBar) renderMessage() string {
	if s.isError {
		return styles.ErrorStyle.Render(styles.Truncate(s.message, s.width/2))
	}
	return styles.SuccessStyle.Render(styles.Truncate(s.message, s.width/2))
}
