package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/tui/styles"
)

// PickResult is the outcome of a board picker interaction.
type PickResult struct {
	Board     *domain.Board // chosen existing board
	NewBoard  string        // non-empty when a new board should be created
	Cancelled bool
}

// BoardPicker is the modal shown when saving an ad: pick an existing
// board or type a name to create one.
type BoardPicker struct {
	boards   []domain.Board
	adID     string
	cursor   int
	input    textinput.Model
	creating bool
	visible  bool
	width    int
}

// NewBoardPicker creates a hidden board picker.
func NewBoardPicker() *BoardPicker {
	ti := textinput.New()
	ti.Placeholder = "new board name"
	ti.Prompt = "> "
	ti.CharLimit = 80
	return &BoardPicker{input: ti}
}

// Show opens the picker for the given ad.
func (p *BoardPicker) Show(boards []domain.Board, adID string) {
	p.boards = boards
	p.adID = adID
	p.cursor = 0
	p.creating = false
	p.input.SetValue("")
	p.visible = true
}

// Hide closes the picker.
func (p *BoardPicker) Hide() { p.visible = false }

// IsVisible reports whether the picker is open.
func (p *BoardPicker) IsVisible() bool { return p.visible }

// AdID returns the ad being saved.
func (p *BoardPicker) AdID() string { return p.adID }

// SetSize sets the render width.
func (p *BoardPicker) SetSize(width int) { p.width = width }

// HandleKey processes one keypress. A non-nil result ends the
// interaction.
func (p *BoardPicker) HandleKey(msg tea.KeyMsg) (*PickResult, tea.Cmd) {
	if p.creating {
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(p.input.Value())
			p.Hide()
			if name == "" {
				return &PickResult{Cancelled: true}, nil
			}
			return &PickResult{NewBoard: name}, nil
		case "esc":
			p.creating = false
			p.input.Blur()
			return nil, nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return nil, cmd
	}

	switch msg.String() {
	case "esc", "q":
		p.Hide()
		return &PickResult{Cancelled: true}, nil
	case "j", "down":
		if p.cursor < len(p.boards)-1 {
			p.cursor++
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "n":
		p.creating = true
		return nil, p.input.Focus()
	case "enter":
		if p.cursor < len(p.boards) {
			board := p.boards[p.cursor]
			p.Hide()
			return &PickResult{Board: &board}, nil
		}
	}
	return nil, nil
}

// View renders the picker modal.
func (p *BoardPicker) View() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Save to board"))
	b.WriteString("\n")

	if len(p.boards) == 0 {
		b.WriteString(styles.DimStyle.Render("No boards yet"))
		b.WriteString("\n")
	}
	for i, board := range p.boards {
		label := styles.Truncate(board.Name, p.width-12)
		if board.ItemCount > 0 {
			label += styles.DimStyle.Render(" · " + strconv.Itoa(board.ItemCount))
		}
		if i == p.cursor && !p.creating {
			b.WriteString(styles.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.creating {
		b.WriteString(p.input.View())
	} else {
		b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" save  "))
		b.WriteString(styles.HelpKeyStyle.Render("n") + styles.HelpDescStyle.Render(" new board  "))
		b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel"))
	}

	return styles.ModalStyle.Render(b.String())
}
