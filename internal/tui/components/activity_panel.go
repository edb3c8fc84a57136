package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/tui/styles"
)

// ActivityPanel is the slide-over notification feed.
type ActivityPanel struct {
	items   []domain.ActivityLog
	cursor  int
	offset  int
	width   int
	height  int
	visible bool
}

// NewActivityPanel creates a hidden activity panel.
func NewActivityPanel() *ActivityPanel {
	return &ActivityPanel{}
}

// Show opens the panel.
func (p *ActivityPanel) Show() { p.visible = true }

// Hide closes the panel.
func (p *ActivityPanel) Hide() { p.visible = false }

// IsVisible reports whether the panel is open.
func (p *ActivityPanel) IsVisible() bool { return p.visible }

// SetItems replaces the feed contents.
func (p *ActivityPanel) SetItems(items []domain.ActivityLog) {
	p.items = items
	if p.cursor >= len(items) {
		p.cursor = 0
		p.offset = 0
	}
}

// SetSize sets the render dimensions.
func (p *ActivityPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// MoveUp moves the cursor up one entry.
func (p *ActivityPanel) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
		if p.cursor < p.offset {
			p.offset = p.cursor
		}
	}
}

// MoveDown moves the cursor down one entry.
func (p *ActivityPanel) MoveDown() {
	if p.cursor < len(p.items)-1 {
		p.cursor++
		visible := p.height - 4
		if p.cursor >= p.offset+visible {
			p.offset = p.cursor - visible + 1
		}
	}
}

// View renders the panel as a modal box.
func (p *ActivityPanel) View() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Activity"))
	b.WriteString("\n")

	if len(p.items) == 0 {
		b.WriteString(styles.DimStyle.Render("No activity yet"))
	} else {
		visible := p.height - 4
		if visible < 1 {
			visible = 1
		}
		end := p.offset + visible
		if end > len(p.items) {
			end = len(p.items)
		}
		for i := p.offset; i < end; i++ {
			b.WriteString(p.renderEntry(p.items[i], i == p.cursor))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	return styles.ModalStyle.Width(p.width).Render(b.String())
}

func (p *ActivityPanel) renderEntry(entry domain.ActivityLog, selected bool) string {
	age := relativeAge(entry.CreatedAt.Time)
	line := styles.Truncate(entry.Title, p.width-len(age)-6) + "  " + styles.DimStyle.Render(age)
	if selected {
		line = styles.SelectedItemStyle.Render(line)
	} else {
		line = styles.NormalItemStyle.Render(line)
	}
	if entry.Message != "" {
		line += "\n" + styles.DimStyle.Render("  "+styles.Truncate(entry.Message, p.width-6))
	}
	return line
}

// relativeAge renders a coarse "5m ago" style age.
func relativeAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
