// Package tui is the terminal frontend: a tabbed browser over the ad
// search feed, saved-ad boards, and monitored brands, with an activity
// panel overlay.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/search"
	"github.com/adlens/adlens/internal/service"
	"github.com/adlens/adlens/internal/session"
	"github.com/adlens/adlens/internal/store"
	"github.com/adlens/adlens/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
	StateSessionExpired
)

// Tab identifies the main views
type Tab int

const (
	TabSearch Tab = iota
	TabBoards
	TabBrands
)

var tabNames = []string{"Search", "Boards", "Brands"}

// ChromeHeight is the rows taken by tab bar, filter bar, and footer.
const ChromeHeight = 3

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Tab   Tab
	Ready bool

	// Services
	SearchCtrl  *service.SearchController
	BoardSvc    *service.BoardService
	BrandSvc    *service.BrandService
	ActivitySvc *service.ActivityService
	Session     *session.Session
	Client      *api.Client
	Cache       *store.Cache

	notifier *Notifier

	// Components
	AdList        *components.AdList
	FilterBar     *components.FilterBar
	Inspector     *components.Inspector
	StatusBar     *components.StatusBar
	ActivityPanel *components.ActivityPanel
	BoardPicker   *components.BoardPicker

	// Boards view
	boards       []domain.Board
	boardCursor  int
	boardsPage   int
	boardsNext   bool
	boardDetail  *api.BoardDetail
	itemCursor   int
	boardInput   textinput.Model
	boardTyping  bool

	// Brands view
	brands      []api.BrandEntry
	brandCursor int
	brandStats  map[string]domain.BrandStats

	// Local fuzzy filter over loaded search results
	localInput  textinput.Model
	localTyping bool
	localActive bool

	Width   int
	Height  int
	Loading bool
}

// NewModel creates the application model.
func NewModel(
	searchCtrl *service.SearchController,
	boardSvc *service.BoardService,
	brandSvc *service.BrandService,
	activitySvc *service.ActivityService,
	sess *session.Session,
	client *api.Client,
	cache *store.Cache,
	notifier *Notifier,
) Model {
	boardInput := textinput.New()
	boardInput.Placeholder = "board name"
	boardInput.Prompt = "> "
	boardInput.CharLimit = 80

	localInput := textinput.New()
	localInput.Placeholder = "filter loaded ads..."
	localInput.Prompt = "f "
	localInput.CharLimit = 80

	m := Model{
		State:         StateBrowsing,
		SearchCtrl:    searchCtrl,
		BoardSvc:      boardSvc,
		BrandSvc:      brandSvc,
		ActivitySvc:   activitySvc,
		Session:       sess,
		Client:        client,
		Cache:         cache,
		notifier:      notifier,
		AdList:        components.NewAdList(),
		FilterBar:     components.NewFilterBar(),
		Inspector:     components.NewInspector(),
		StatusBar:     components.NewStatusBar(),
		ActivityPanel: components.NewActivityPanel(),
		BoardPicker:   components.NewBoardPicker(),
		boardInput:    boardInput,
		localInput:    localInput,
		brandStats:    make(map[string]domain.BrandStats),
		boardsPage:    1,
	}
	if user := sess.CurrentUser(); user != nil {
		m.StatusBar.SetUser(user.Email)
	}
	if cached, ok := boardSvc.CachedList(); ok {
		m.boards = cached
	}
	// Paint the last good first page while the fresh fetch is in flight.
	if cached, ok := searchCtrl.CachedFirstPage(); ok {
		m.AdList.SetItems(cached.Items, cached.Total, cached.HasNext)
		m.Inspector.SetAd(m.AdList.Selected())
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.notifier.ListenCmd(),
		SearchCmd(m.SearchCtrl),
		LoadBoardsCmd(m.BoardSvc, 1),
		LoadBrandsCmd(m.BrandSvc),
		RefreshActivityCmd(m.ActivitySvc),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if m.Loading {
			m.StatusBar.Tick()
		}
		return m, TickCmd(100 * time.Millisecond)

	case LoadingMsg:
		m.Loading = msg.Busy
		m.StatusBar.SetLoading(msg.Busy)
		m.AdList.SetLoading(msg.Busy)
		return m, m.notifier.ListenCmd()

	case SessionExpiredMsg:
		m.State = StateSessionExpired
		m.ActivitySvc.StopPolling()
		return m, m.notifier.ListenCmd()

	case SearchResultsMsg:
		m.localActive = false
		m.AdList.SetItems(msg.Items, msg.Total, msg.HasNext)
		m.Inspector.SetAd(m.AdList.Selected())
		return m, nil

	case MoreResultsMsg:
		if !m.localActive {
			m.AdList.AppendItems(msg.Items, msg.Total, msg.HasNext)
		}
		return m, nil

	case AdDetailLoadedMsg:
		m.Inspector.SetDetail(msg.Detail)
		return m, nil

	case BoardsLoadedMsg:
		m.boards = msg.Boards
		m.boardsPage = msg.Page
		m.boardsNext = msg.HasNext
		if m.boardCursor >= len(m.boards) {
			m.boardCursor = 0
		}
		return m, nil

	case BoardDetailLoadedMsg:
		detail := msg.Detail
		m.boardDetail = &detail
		m.itemCursor = 0
		return m, nil

	case BoardCreatedMsg:
		if msg.Error != nil {
			return m.flashError("Failed to create board", msg.Error)
		}
		m.StatusBar.SetMessage("Created board: "+msg.Board.Name, false)
		cmds = append(cmds, LoadBoardsCmd(m.BoardSvc, 1), ClearStatusCmd(3*time.Second))
		return m, tea.Batch(cmds...)

	case BoardDeletedMsg:
		if msg.Error != nil {
			return m.flashError("Failed to delete board", msg.Error)
		}
		m.boardDetail = nil
		m.StatusBar.SetMessage("Board deleted", false)
		cmds = append(cmds, LoadBoardsCmd(m.BoardSvc, 1), ClearStatusCmd(3*time.Second))
		return m, tea.Batch(cmds...)

	case AdSavedMsg:
		if msg.Error != nil {
			return m.flashError("Failed to save ad", msg.Error)
		}
		m.StatusBar.SetMessage("Saved to "+msg.BoardName, false)
		cmds = append(cmds, LoadBoardsCmd(m.BoardSvc, 1), ClearStatusCmd(3*time.Second))
		return m, tea.Batch(cmds...)

	case BoardItemRemovedMsg:
		if msg.Error != nil {
			return m.flashError("Failed to remove item", msg.Error)
		}
		m.StatusBar.SetMessage("Removed from board", false)
		cmds = append(cmds, ClearStatusCmd(3*time.Second))
		if m.boardDetail != nil {
			cmds = append(cmds, LoadBoardDetailCmd(m.BoardSvc, m.boardDetail.ID, m.boardDetail.Page))
		}
		return m, tea.Batch(cmds...)

	case BrandsLoadedMsg:
		m.brands = msg.Brands
		if m.brandCursor >= len(m.brands) {
			m.brandCursor = 0
		}
		return m, nil

	case BrandStatsLoadedMsg:
		m.brandStats[msg.Stats.Brand.ID] = msg.Stats
		return m, nil

	case BrandRemovedMsg:
		if msg.Error != nil {
			return m.flashError("Failed to remove brand", msg.Error)
		}
		m.StatusBar.SetMessage("Brand removed", false)
		return m, tea.Batch(LoadBrandsCmd(m.BrandSvc), ClearStatusCmd(3*time.Second))

	case ActivityUpdatedMsg:
		m.ActivityPanel.SetItems(msg.Items)
		m.StatusBar.SetUnread(msg.Unread)
		if m.ActivityPanel.IsVisible() {
			// Panel is open, everything shown is read.
			m.ActivitySvc.MarkSeen()
			m.StatusBar.SetUnread(0)
		}
		return m, m.notifier.ListenCmd()

	case ErrMsg:
		m.StatusBar.SetMessage(msg.Error(), true)
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusBar.SetMessage(msg.Message, msg.IsError)
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusBar.ClearMessage()
		return m, nil

	case LogoutCompleteMsg:
		fmt.Println("\nLogged out. Run 'adlens' to sign in again.")
		return m, tea.Quit
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateHelp:
		if s := msg.String(); s == "esc" || s == "?" || s == "q" {
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmLogout:
		switch msg.String() {
		case "y", "Y":
			return m, LogoutCmd(m.Session, m.Cache)
		case "n", "N", "esc":
			m.State = StateBrowsing
		}
		return m, nil

	case StateSessionExpired:
		return m, tea.Quit
	}

	// Modal components swallow keys while open.
	if m.BoardPicker.IsVisible() {
		result, cmd := m.BoardPicker.HandleKey(msg)
		if result == nil {
			return m, cmd
		}
		switch {
		case result.Cancelled:
			return m, nil
		case result.NewBoard != "":
			return m, CreateBoardAndSaveCmd(m.BoardSvc, result.NewBoard, m.BoardPicker.AdID())
		case result.Board != nil:
			return m, SaveAdCmd(m.BoardSvc, result.Board.ID, result.Board.Name, m.BoardPicker.AdID())
		}
		return m, nil
	}

	if m.ActivityPanel.IsVisible() {
		switch msg.String() {
		case "esc", "a", "q":
			m.ActivityPanel.Hide()
			m.ActivitySvc.StopPolling()
		case "j", "down":
			m.ActivityPanel.MoveDown()
		case "k", "up":
			m.ActivityPanel.MoveUp()
		}
		return m, nil
	}

	// Keyword entry on the search tab.
	if m.FilterBar.IsTyping() {
		update, cmd := m.FilterBar.Update(msg)
		if update != nil {
			return m, UpdateFiltersCmd(m.SearchCtrl, *update)
		}
		return m, cmd
	}

	// Local fuzzy filter entry.
	if m.localTyping {
		return m.handleLocalFilterKey(msg)
	}

	// Board-name entry.
	if m.boardTyping {
		switch msg.String() {
		case "enter":
			name := m.boardInput.Value()
			m.boardTyping = false
			m.boardInput.Blur()
			m.boardInput.SetValue("")
			if name != "" {
				return m, CreateBoardCmd(m.BoardSvc, name, "")
			}
			return m, nil
		case "esc":
			m.boardTyping = false
			m.boardInput.Blur()
			m.boardInput.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.boardInput, cmd = m.boardInput.Update(msg)
		return m, cmd
	}

	// Global keys
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.State = StateHelp
		return m, nil

	case "L":
		m.State = StateConfirmLogout
		return m, nil

	case "tab":
		m.Tab = (m.Tab + 1) % 3
		return m, nil

	case "1":
		m.Tab = TabSearch
		return m, nil
	case "2":
		m.Tab = TabBoards
		return m, nil
	case "3":
		m.Tab = TabBrands
		return m, nil

	case "a":
		return m.toggleActivityPanel()

	case "r":
		return m.refreshCurrentTab()
	}

	switch m.Tab {
	case TabSearch:
		return m.handleSearchKey(msg)
	case TabBoards:
		return m.handleBoardsKey(msg)
	case TabBrands:
		return m.handleBrandsKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.AdList.MoveDown() && !m.localActive {
			m.Inspector.SetAd(m.AdList.Selected())
			return m, LoadMoreCmd(m.SearchCtrl)
		}
		m.Inspector.SetAd(m.AdList.Selected())
		return m, nil

	case "k", "up":
		m.AdList.MoveUp()
		m.Inspector.SetAd(m.AdList.Selected())
		return m, nil

	case "g":
		m.AdList.GotoTop()
		m.Inspector.SetAd(m.AdList.Selected())
		return m, nil

	case "G":
		want := m.AdList.GotoBottom()
		m.Inspector.SetAd(m.AdList.Selected())
		if want && !m.localActive {
			return m, LoadMoreCmd(m.SearchCtrl)
		}
		return m, nil

	case "/":
		return m, m.FilterBar.StartTyping()

	case "p":
		return m, UpdateFiltersCmd(m.SearchCtrl, m.FilterBar.CyclePlatform())

	case "m":
		return m, UpdateFiltersCmd(m.SearchCtrl, m.FilterBar.CycleFormat())

	case "o":
		return m, UpdateFiltersCmd(m.SearchCtrl, m.FilterBar.CycleSort())

	case "c":
		return m, UpdateFiltersCmd(m.SearchCtrl, m.FilterBar.Reset())

	case "f":
		m.localTyping = true
		return m, m.localInput.Focus()

	case "esc":
		if m.localActive {
			m.clearLocalFilter()
		}
		return m, nil

	case "enter":
		if ad := m.AdList.Selected(); ad != nil {
			return m, LoadAdDetailCmd(m.Client, ad.ID)
		}
		return m, nil

	case "s":
		if ad := m.AdList.Selected(); ad != nil {
			m.BoardPicker.SetSize(m.Width / 2)
			m.BoardPicker.Show(m.boards, ad.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleLocalFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.localTyping = false
		m.localInput.Blur()
		return m, nil
	case "esc":
		m.localTyping = false
		m.localInput.Blur()
		m.clearLocalFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.localInput, cmd = m.localInput.Update(msg)
	m.applyLocalFilter()
	return m, cmd
}

// applyLocalFilter narrows the visible list to fuzzy matches over the
// already-loaded results. Load-more is suspended while a filter is
// active.
func (m *Model) applyLocalFilter() {
	query := m.localInput.Value()
	if query == "" {
		m.clearLocalFilter()
		return
	}
	all := m.SearchCtrl.Items()
	results := search.Filter(query, search.NewIndex(all))
	filtered := make([]domain.Ad, len(results))
	for i, r := range results {
		filtered[i] = r.Ad
	}
	m.localActive = true
	m.AdList.SetItems(filtered, len(filtered), false)
	m.Inspector.SetAd(m.AdList.Selected())
}

func (m *Model) clearLocalFilter() {
	m.localActive = false
	m.localInput.SetValue("")
	m.AdList.SetItems(m.SearchCtrl.Items(), m.SearchCtrl.Total(), m.SearchCtrl.HasNext())
	m.Inspector.SetAd(m.AdList.Selected())
}

func (m Model) handleBoardsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Inside a board: item-level keys.
	if m.boardDetail != nil {
		switch msg.String() {
		case "h", "left", "backspace", "esc":
			m.boardDetail = nil
			return m, nil
		case "j", "down":
			if m.itemCursor < len(m.boardDetail.Items)-1 {
				m.itemCursor++
			}
			return m, nil
		case "k", "up":
			if m.itemCursor > 0 {
				m.itemCursor--
			}
			return m, nil
		case "]":
			if m.boardDetail.HasNext {
				return m, LoadBoardDetailCmd(m.BoardSvc, m.boardDetail.ID, m.boardDetail.Page+1)
			}
			return m, nil
		case "[":
			if m.boardDetail.Page > 1 {
				return m, LoadBoardDetailCmd(m.BoardSvc, m.boardDetail.ID, m.boardDetail.Page-1)
			}
			return m, nil
		case "x":
			if m.itemCursor < len(m.boardDetail.Items) {
				item := m.boardDetail.Items[m.itemCursor]
				return m, RemoveBoardItemCmd(m.BoardSvc, m.boardDetail.ID, item.ID)
			}
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.boardCursor < len(m.boards)-1 {
			m.boardCursor++
		}
	case "k", "up":
		if m.boardCursor > 0 {
			m.boardCursor--
		}
	case "enter", "l", "right":
		if m.boardCursor < len(m.boards) {
			return m, LoadBoardDetailCmd(m.BoardSvc, m.boards[m.boardCursor].ID, 1)
		}
	case "n":
		m.boardTyping = true
		return m, m.boardInput.Focus()
	case "x":
		if m.boardCursor < len(m.boards) {
			return m, DeleteBoardCmd(m.BoardSvc, m.boards[m.boardCursor].ID)
		}
	case "]":
		if m.boardsNext {
			return m, LoadBoardsCmd(m.BoardSvc, m.boardsPage+1)
		}
	case "[":
		if m.boardsPage > 1 {
			return m, LoadBoardsCmd(m.BoardSvc, m.boardsPage-1)
		}
	}
	return m, nil
}

func (m Model) handleBrandsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.brandCursor < len(m.brands)-1 {
			m.brandCursor++
		}
	case "k", "up":
		if m.brandCursor > 0 {
			m.brandCursor--
		}
	case "enter":
		if m.brandCursor < len(m.brands) {
			return m, LoadBrandStatsCmd(m.BrandSvc, m.brands[m.brandCursor].Brand.ID)
		}
	case "x":
		if m.brandCursor < len(m.brands) {
			return m, UnmonitorBrandCmd(m.BrandSvc, m.brands[m.brandCursor].Brand.ID)
		}
	}
	return m, nil
}

// toggleActivityPanel opens or closes the panel. Opening marks the feed
// seen and starts the poll loop; closing stops it.
func (m Model) toggleActivityPanel() (tea.Model, tea.Cmd) {
	if m.ActivityPanel.IsVisible() {
		m.ActivityPanel.Hide()
		m.ActivitySvc.StopPolling()
		return m, nil
	}

	m.ActivityPanel.SetSize(m.Width*2/3, m.Height-4)
	m.ActivityPanel.Show()
	m.ActivitySvc.MarkSeen()
	m.StatusBar.SetUnread(0)

	svc := m.ActivitySvc
	notifier := m.notifier
	svc.StartPolling(context.Background(), func() {
		notifier.ActivityUpdated(ActivityUpdatedMsg{Items: svc.Items(), Unread: svc.UnreadCount()})
	})
	return m, RefreshActivityCmd(m.ActivitySvc)
}

func (m Model) refreshCurrentTab() (tea.Model, tea.Cmd) {
	switch m.Tab {
	case TabSearch:
		return m, SearchCmd(m.SearchCtrl)
	case TabBoards:
		if m.boardDetail != nil {
			return m, LoadBoardDetailCmd(m.BoardSvc, m.boardDetail.ID, m.boardDetail.Page)
		}
		return m, LoadBoardsCmd(m.BoardSvc, m.boardsPage)
	case TabBrands:
		return m, LoadBrandsCmd(m.BrandSvc)
	}
	return m, nil
}

func (m Model) flashError(context string, err error) (tea.Model, tea.Cmd) {
	m.StatusBar.SetMessage(context+": "+err.Error(), true)
	return m, ClearStatusCmd(5 * time.Second)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	contentHeight := m.Height - ChromeHeight
	listWidth := m.Width * 60 / 100
	m.AdList.SetSize(listWidth, contentHeight)
	m.Inspector.SetSize(m.Width-listWidth, contentHeight)
	m.FilterBar.SetSize(m.Width)
	m.StatusBar.SetSize(m.Width)
	m.localInput.Width = m.Width - 10
	m.ActivityPanel.SetSize(m.Width*2/3, m.Height-4)
}
