package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/tui/styles"
)

// loadMoreThreshold is how close to the bottom the cursor must be before
// the list asks for the next page.
const loadMoreThreshold = 5

// AdList renders the scrollable creative feed. When the cursor nears the
// bottom of an incomplete list it reports that the next page should load.
type AdList struct {
	items   []domain.Ad
	cursor  int
	offset  int
	width   int
	height  int
	total   int
	hasNext bool
	loading bool
}

// NewAdList creates an empty ad list.
func NewAdList() *AdList {
	return &AdList{}
}

// SetItems replaces the list contents and resets the cursor.
func (l *AdList) SetItems(items []domain.Ad, total int, hasNext bool) {
	l.items = items
	l.total = total
	l.hasNext = hasNext
	l.cursor = 0
	l.offset = 0
}

// AppendItems replaces the backing slice with the new accumulated list
// but keeps the cursor where it was.
func (l *AdList) AppendItems(items []domain.Ad, total int, hasNext bool) {
	l.items = items
	l.total = total
	l.hasNext = hasNext
	if l.cursor >= len(items) && len(items) > 0 {
		l.cursor = len(items) - 1
	}
}

// SetLoading marks a fetch in flight so the footer shows progress.
func (l *AdList) SetLoading(loading bool) { l.loading = loading }

// SetSize sets the render dimensions.
func (l *AdList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clampScroll()
}

// Items returns the backing slice.
func (l *AdList) Items() []domain.Ad { return l.items }

// Len returns the number of listed ads.
func (l *AdList) Len() int { return len(l.items) }

// Selected returns the ad under the cursor, or nil for an empty list.
func (l *AdList) Selected() *domain.Ad {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return nil
	}
	return &l.items[l.cursor]
}

// SelectedIndex returns the cursor position.
func (l *AdList) SelectedIndex() int { return l.cursor }

// MoveUp moves the cursor up one row.
func (l *AdList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.clampScroll()
	}
}

// MoveDown moves the cursor down one row and reports whether the next
// page should be requested.
func (l *AdList) MoveDown() (wantMore bool) {
	if l.cursor < len(l.items)-1 {
		l.cursor++
		l.clampScroll()
	}
	return l.NearEnd()
}

// GotoTop jumps to the first row.
func (l *AdList) GotoTop() {
	l.cursor = 0
	l.offset = 0
}

// GotoBottom jumps to the last row.
func (l *AdList) GotoBottom() (wantMore bool) {
	if len(l.items) > 0 {
		l.cursor = len(l.items) - 1
		l.clampScroll()
	}
	return l.NearEnd()
}

// NearEnd reports whether the cursor is close enough to the bottom that
// the next page should load. False when no further page exists.
func (l *AdList) NearEnd() bool {
	if !l.hasNext || len(l.items) == 0 {
		return false
	}
	return l.cursor >= len(l.items)-loadMoreThreshold
}

func (l *AdList) clampScroll() {
	visible := l.visibleRows()
	if visible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
}

func (l *AdList) visibleRows() int {
	// One line reserved for the footer.
	return l.height - 1
}

// View renders the list.
func (l *AdList) View() string {
	if l.width == 0 || l.height == 0 {
		return ""
	}

	var b strings.Builder
	visible := l.visibleRows()

	if len(l.items) == 0 {
		empty := "No ads found"
		if l.loading {
			empty = "Searching..."
		}
		b.WriteString(styles.DimStyle.Render(empty))
		b.WriteString(strings.Repeat("\n", visible))
	} else {
		end := l.offset + visible
		if end > len(l.items) {
			end = len(l.items)
		}
		for i := l.offset; i < end; i++ {
			b.WriteString(l.renderRow(l.items[i], i == l.cursor))
			b.WriteString("\n")
		}
		for i := end - l.offset; i < visible; i++ {
			b.WriteString("\n")
		}
	}

	b.WriteString(l.renderFooter())
	return b.String()
}

func (l *AdList) renderRow(ad domain.Ad, selected bool) string {
	badge := styles.PlatformBadge(string(ad.Platform))
	engagement := styles.DimStyle.Render(fmt.Sprintf("%6d♥", ad.Engagement()))

	labelWidth := l.width - lipgloss.Width(badge) - lipgloss.Width(engagement) - 4
	label := styles.Truncate(ad.DisplayTitle(), labelWidth)

	row := fmt.Sprintf("%s %s %s", badge, styles.Pad(label, labelWidth), engagement)
	if selected {
		return styles.SelectedItemStyle.Render(row)
	}
	return styles.NormalItemStyle.Render(row)
}

func (l *AdList) renderFooter() string {
	if len(l.items) == 0 {
		return styles.DimStyle.Render(fmt.Sprintf("0 of %d", l.total))
	}
	status := fmt.Sprintf("%d of %d", len(l.items), l.total)
	if l.loading {
		status += "  loading..."
	} else if l.hasNext {
		status += "  scroll for more"
	}
	return styles.DimStyle.Render(status)
}
