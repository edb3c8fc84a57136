package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmLogout:
		return m.renderLogoutConfirmation()
	case StateSessionExpired:
		return m.renderSessionExpired()
	}

	var content string
	switch m.Tab {
	case TabSearch:
		content = m.renderSearchTab()
	case TabBoards:
		content = m.renderBoardsTab()
	case TabBrands:
		content = m.renderBrandsTab()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabBar(),
		content,
		m.StatusBar.View(),
	)

	if m.ActivityPanel.IsVisible() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.ActivityPanel.View())
	}
	if m.BoardPicker.IsVisible() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.BoardPicker.View())
	}
	return view
}

func (m Model) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.Tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(name))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderSearchTab() string {
	var filterLine string
	if m.localTyping || m.localActive {
		filterLine = m.localInput.View()
	} else {
		filterLine = m.FilterBar.View()
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.AdList.View(),
		m.Inspector.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, filterLine, body)
}

func (m Model) renderBoardsTab() string {
	contentHeight := m.Height - ChromeHeight

	if m.boardDetail != nil {
		return m.renderBoardDetail(contentHeight)
	}

	var b strings.Builder
	if m.boardTyping {
		b.WriteString(m.boardInput.View())
	} else {
		b.WriteString(styles.DimStyle.Render("n new  enter open  x delete  [ ] pages"))
	}
	b.WriteString("\n")

	if len(m.boards) == 0 {
		b.WriteString(styles.DimStyle.Render("No boards yet. Press n to create one."))
	}
	for i, board := range m.boards {
		label := fmt.Sprintf("%s  %s", styles.Pad(board.Name, 32),
			styles.DimStyle.Render(fmt.Sprintf("%d items", board.ItemCount)))
		if board.Description != "" {
			label += "  " + styles.DimStyle.Render(styles.Truncate(board.Description, m.Width-50))
		}
		if i == m.boardCursor {
			b.WriteString(styles.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	if m.boardsPage > 1 || m.boardsNext {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("page %d", m.boardsPage)))
	}

	return fillHeight(b.String(), contentHeight)
}

func (m Model) renderBoardDetail(contentHeight int) string {
	d := m.boardDetail

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(d.Name))
	b.WriteString("  ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d items · page %d", d.Total, d.Page)))
	b.WriteString("\n")
	if d.Description != "" {
		b.WriteString(styles.SubtitleStyle.Render(d.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(d.Items) == 0 {
		b.WriteString(styles.DimStyle.Render("This board is empty."))
	}
	for i, item := range d.Items {
		badge := styles.PlatformBadge(string(item.Ad.Platform))
		label := badge + " " + styles.Truncate(item.Ad.DisplayTitle(), m.Width-20)
		if i == m.itemCursor {
			b.WriteString(styles.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	return fillHeight(b.String(), contentHeight)
}

func (m Model) renderBrandsTab() string {
	contentHeight := m.Height - ChromeHeight

	var b strings.Builder
	b.WriteString(styles.DimStyle.Render("enter stats  x stop monitoring"))
	b.WriteString("\n")

	if len(m.brands) == 0 {
		b.WriteString(styles.DimStyle.Render("No monitored brands."))
	}
	for i, entry := range m.brands {
		status := styles.SuccessStyle.Render("●")
		if !entry.Brand.Active {
			status = styles.DimStyle.Render("○")
		}
		label := fmt.Sprintf("%s %s  %s", status, styles.Pad(entry.Brand.Name, 28),
			styles.DimStyle.Render(fmt.Sprintf("%d sources", len(entry.Sources))))
		if entry.Brand.Notes != "" {
			label += "  " + styles.DimStyle.Render(styles.Truncate(entry.Brand.Notes, m.Width-50))
		}
		if i == m.brandCursor {
			b.WriteString(styles.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(label))
		}
		b.WriteString("\n")

		if stats, ok := m.brandStats[entry.Brand.ID]; ok && i == m.brandCursor {
			b.WriteString(renderBrandStats(stats))
		}
	}

	return fillHeight(b.String(), contentHeight)
}

func renderBrandStats(stats domain.BrandStats) string {
	var b strings.Builder
	line := fmt.Sprintf("    %d ads collected", stats.TotalAds)
	if stats.LastCollectedAt != nil && !stats.LastCollectedAt.IsZero() {
		line += " · last " + stats.LastCollectedAt.Format("Jan 2 15:04")
	}
	b.WriteString(styles.DimStyle.Render(line))
	b.WriteString("\n")
	if len(stats.ByPlatform) > 0 {
		var parts []string
		for platform, count := range stats.ByPlatform {
			parts = append(parts, fmt.Sprintf("%s %d", platform, count))
		}
		b.WriteString(styles.DimStyle.Render("    " + strings.Join(parts, " · ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")

	sections := []struct {
		title string
		keys  []keyBinding
	}{
		{"Global", globalKeys},
		{"Search", searchKeys},
		{"Boards", boardKeys},
		{"Brands", brandKeys},
	}
	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.TitleStyle.Render(section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			b.WriteString("  ")
			b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(k.Key, 12)))
			b.WriteString(styles.HelpDescStyle.Render(k.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("esc to close"))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}

func (m Model) renderLogoutConfirmation() string {
	body := styles.ModalTitleStyle.Render("Log out?") + "\n" +
		styles.SubtitleStyle.Render("Your saved boards stay on the server.") + "\n\n" +
		styles.HelpKeyStyle.Render("y") + styles.HelpDescStyle.Render(" yes   ") +
		styles.HelpKeyStyle.Render("n") + styles.HelpDescStyle.Render(" no")
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

func (m Model) renderSessionExpired() string {
	body := styles.ModalTitleStyle.Render("Session expired") + "\n" +
		styles.SubtitleStyle.Render("Your sign-in could not be renewed.") + "\n" +
		styles.SubtitleStyle.Render("Run 'adlens' again to log back in.") + "\n\n" +
		styles.DimStyle.Render("press any key to exit")
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

// fillHeight pads content with blank lines so the footer stays pinned.
func fillHeight(content string, height int) string {
	lines := strings.Count(content, "\n") + 1
	if lines >= height {
		return content
	}
	return content + strings.Repeat("\n", height-lines)
}
