package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/tui/styles"
)

var (
	platformCycle = []domain.Platform{
		domain.PlatformAll,
		domain.PlatformMeta,
		domain.PlatformGoogle,
		domain.PlatformTikTok,
		domain.PlatformInstagram,
	}
	formatCycle = []domain.Format{
		domain.FormatAll,
		domain.FormatImage,
		domain.FormatVideo,
		domain.FormatCarousel,
		domain.FormatReels,
		domain.FormatText,
	}
	sortCycle = []string{domain.SortRecent, domain.SortPopular, domain.SortEngagement}
)

// FilterBar shows the active search filters and owns the keyword input.
type FilterBar struct {
	input    textinput.Model
	platform domain.Platform
	format   domain.Format
	sort     string
	typing   bool
	width    int
}

// NewFilterBar creates a filter bar with default filters.
func NewFilterBar() *FilterBar {
	ti := textinput.New()
	ti.Placeholder = "search ads..."
	ti.Prompt = "/ "
	ti.CharLimit = 120
	return &FilterBar{
		input:    ti,
		platform: domain.PlatformAll,
		format:   domain.FormatAll,
		sort:     domain.SortRecent,
	}
}

// SetSize sets the render width.
func (f *FilterBar) SetSize(width int) {
	f.width = width
	f.input.Width = width - 10
}

// StartTyping focuses the keyword input.
func (f *FilterBar) StartTyping() tea.Cmd {
	f.typing = true
	return f.input.Focus()
}

// StopTyping blurs the keyword input.
func (f *FilterBar) StopTyping() {
	f.typing = false
	f.input.Blur()
}

// IsTyping reports whether the keyword input has focus.
func (f *FilterBar) IsTyping() bool { return f.typing }

// Update forwards keystrokes to the keyword input while typing. It
// returns a non-nil update when enter commits the keyword.
func (f *FilterBar) Update(msg tea.KeyMsg) (*domain.FilterUpdate, tea.Cmd) {
	if !f.typing {
		return nil, nil
	}
	switch msg.String() {
	case "enter":
		f.StopTyping()
		keyword := strings.TrimSpace(f.input.Value())
		return &domain.FilterUpdate{Keyword: &keyword}, nil
	case "esc":
		f.StopTyping()
		return nil, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return nil, cmd
}

// CyclePlatform advances to the next platform and returns the update.
func (f *FilterBar) CyclePlatform() domain.FilterUpdate {
	f.platform = next(platformCycle, f.platform)
	p := f.platform
	return domain.FilterUpdate{Platform: &p}
}

// CycleFormat advances to the next format and returns the update.
func (f *FilterBar) CycleFormat() domain.FilterUpdate {
	f.format = next(formatCycle, f.format)
	fm := f.format
	return domain.FilterUpdate{Format: &fm}
}

// CycleSort advances to the next sort order and returns the update.
func (f *FilterBar) CycleSort() domain.FilterUpdate {
	f.sort = next(sortCycle, f.sort)
	s := f.sort
	return domain.FilterUpdate{Sort: &s}
}

// Reset restores the default filters and returns the update applying them.
func (f *FilterBar) Reset() domain.FilterUpdate {
	f.platform = domain.PlatformAll
	f.format = domain.FormatAll
	f.sort = domain.SortRecent
	f.input.SetValue("")
	keyword := ""
	p, fm, s := f.platform, f.format, f.sort
	return domain.FilterUpdate{Keyword: &keyword, Platform: &p, Format: &fm, Sort: &s}
}

func next[T comparable](cycle []T, current T) T {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// View renders the bar: the keyword input while typing, otherwise a
// summary of the active filters.
func (f *FilterBar) View() string {
	if f.typing {
		return f.input.View()
	}

	parts := []string{
		styles.AccentStyle.Render("platform:") + string(f.platform),
		styles.AccentStyle.Render("format:") + string(f.format),
		styles.AccentStyle.Render("sort:") + f.sort,
	}
	if kw := strings.TrimSpace(f.input.Value()); kw != "" {
		parts = append([]string{styles.AccentStyle.Render("q:") + kw}, parts...)
	}
	return styles.Truncate(strings.Join(parts, "  "), f.width)
}
