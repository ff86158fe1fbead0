package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcrowe/marquee/internal/auth"
	"github.com/lcrowe/marquee/internal/catalog"
	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/service"
	"github.com/lcrowe/marquee/internal/tmdb"
	"github.com/lcrowe/marquee/internal/tui/styles"
)

// Screen identifies the active view
type Screen int

const (
	ViewBrowse Screen = iota
	ViewDashboard
	ViewLogin
)

// snapshotBuffer is the channel capacity between controller and TUI;
// sends are non-blocking so a slow render never blocks the controller
const snapshotBuffer = 16

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Controller  *catalog.Controller
	LookupSvc   *service.LookupService
	StatsSvc    *service.StatsService
	CatalogRepo domain.CatalogRepository
	AuthSvc     *auth.Service
	TMDB        *tmdb.Client

	// Controller subscription bridge
	updates     chan catalog.Snapshot
	unsubscribe func()

	// Current state
	Screen   Screen
	Snapshot catalog.Snapshot
	Tabs     []catalog.Tab
	TabIndex int
	Cursor   int

	// Dashboard data
	Summary       *domain.StatsSummary
	TopGenres     []domain.GenreCount
	StatsCachedAt time.Time

	// Detail pane
	Detail       *tmdb.Detail
	DetailItemID string

	// Components
	Keys        KeyMap
	SearchInput textinput.Model
	EmailInput  textinput.Model
	PassInput   textinput.Model
	Spinner     spinner.Model

	// UI state
	SearchFocused bool
	LoginField    int // 0 = email, 1 = password
	StatusText    string
	StatusIsErr   bool
	Width         int
	Height        int
}

// NewModel creates the TUI model and wires the controller subscription
func NewModel(
	ctrl *catalog.Controller,
	lookupSvc *service.LookupService,
	statsSvc *service.StatsService,
	catalogRepo domain.CatalogRepository,
	authSvc *auth.Service,
	tmdbClient *tmdb.Client,
) *Model {
	updates := make(chan catalog.Snapshot, snapshotBuffer)
	unsubscribe := ctrl.Subscribe(func(snap catalog.Snapshot) {
		select {
		case updates <- snap:
		default: // Non-blocking if channel full
		}
	})

	searchInput := textinput.New()
	searchInput.Placeholder = "search titles..."
	searchInput.CharLimit = 80

	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	passInput := textinput.New()
	passInput.Placeholder = "password"
	passInput.EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	return &Model{
		Controller:  ctrl,
		LookupSvc:   lookupSvc,
		StatsSvc:    statsSvc,
		CatalogRepo: catalogRepo,
		AuthSvc:     authSvc,
		TMDB:        tmdbClient,
		updates:     updates,
		unsubscribe: unsubscribe,
		Screen:      ViewBrowse,
		Tabs:        []catalog.Tab{catalog.TabAll},
		Snapshot:    ctrl.Snapshot(),
		Keys:        DefaultKeyMap(),
		SearchInput: searchInput,
		EmailInput:  emailInput,
		PassInput:   passInput,
		Spinner:     sp,
	}
}

// Init starts the controller, lookup load, and snapshot listener
func (m *Model) Init() tea.Cmd {
	m.Controller.Start()
	return tea.Batch(
		WaitForSnapshotCmd(m.updates),
		LoadLookupsCmd(m.LookupSvc),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case SnapshotMsg:
		m.Snapshot = msg.Snapshot
		if m.Cursor >= len(m.Snapshot.Items) {
			m.Cursor = 0
		}
		return m, WaitForSnapshotCmd(m.updates)

	case LookupsLoadedMsg:
		m.Tabs = msg.Tabs
		return m, nil

	case DashboardLoadedMsg:
		m.Summary = msg.Summary
		m.TopGenres = msg.TopGenres
		m.StatsCachedAt = msg.CachedAt
		return m, nil

	case DetailLoadedMsg:
		m.DetailItemID = msg.ItemID
		m.Detail = msg.Detail
		return m, nil

	case LoginResultMsg:
		if msg.Err != nil {
			m.StatusText = "login failed: " + msg.Err.Error()
			m.StatusIsErr = true
			return m, ClearStatusCmd()
		}
		m.Screen = ViewBrowse
		m.StatusText = "logged in"
		m.StatusIsErr = false
		// Re-render admin affordances
		m.Snapshot = m.Controller.Snapshot()
		return m, ClearStatusCmd()

	case ErrMsg:
		m.StatusText = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd()

	case StatusMsg:
		m.StatusText = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd()

	case ClearStatusMsg:
		m.StatusText = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Screen == ViewLogin {
		return m.handleLoginKey(msg)
	}

	if m.SearchFocused {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.unsubscribe()
		m.Controller.Close()
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Search):
		m.SearchFocused = true
		m.SearchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil

	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Snapshot.Items)-1 {
			m.Cursor++
		}
		return m, nil

	case key.Matches(msg, m.Keys.NextTab):
		m.TabIndex = (m.TabIndex + 1) % len(m.Tabs)
		m.Controller.SetTab(m.Tabs[m.TabIndex])
		return m, nil

	case key.Matches(msg, m.Keys.PrevTab):
		m.TabIndex = (m.TabIndex - 1 + len(m.Tabs)) % len(m.Tabs)
		m.Controller.SetTab(m.Tabs[m.TabIndex])
		return m, nil

	case key.Matches(msg, m.Keys.NextPage):
		m.Controller.NextPage()
		return m, nil

	case key.Matches(msg, m.Keys.PrevPage):
		m.Controller.PrevPage()
		return m, nil

	case key.Matches(msg, m.Keys.Sort):
		m.cycleSortField()
		return m, nil

	case key.Matches(msg, m.Keys.Order):
		m.toggleSortOrder()
		return m, nil

	case key.Matches(msg, m.Keys.Clear):
		m.SearchInput.SetValue("")
		m.Controller.ClearFilters()
		return m, nil

	case key.Matches(msg, m.Keys.Refresh):
		if m.Screen == ViewDashboard {
			return m, LoadDashboardCmd(m.StatsSvc, m.CatalogRepo, m.LookupSvc)
		}
		// Admin refresh busts the local page cache so backend edits show up
		if m.Snapshot.AdminEnabled {
			if inv, ok := m.CatalogRepo.(interface{ Invalidate() }); ok {
				inv.Invalidate()
			}
		}
		if m.Snapshot.Err != nil {
			m.Controller.Retry()
		} else {
			m.Controller.Refresh()
		}
		return m, nil

	case key.Matches(msg, m.Keys.Dashboard):
		if !m.Snapshot.AdminEnabled {
			m.StatusText = "dashboard requires an admin login"
			m.StatusIsErr = true
			return m, ClearStatusCmd()
		}
		if m.Screen == ViewDashboard {
			m.Screen = ViewBrowse
			return m, nil
		}
		m.Screen = ViewDashboard
		return m, LoadDashboardCmd(m.StatsSvc, m.CatalogRepo, m.LookupSvc)

	case key.Matches(msg, m.Keys.Login):
		if m.AuthSvc.IsAuthenticated() {
			m.AuthSvc.Logout()
			m.Snapshot = m.Controller.Snapshot()
			m.StatusText = "logged out"
			m.StatusIsErr = false
			return m, ClearStatusCmd()
		}
		m.Screen = ViewLogin
		m.LoginField = 0
		m.EmailInput.Focus()
		m.PassInput.Blur()
		return m, textinput.Blink

	case key.Matches(msg, m.Keys.Select):
		if m.Cursor < len(m.Snapshot.Items) {
			item := m.Snapshot.Items[m.Cursor]
			return m, LoadDetailCmd(m.TMDB, item)
		}
		return m, nil

	case key.Matches(msg, m.Keys.Escape):
		if m.Screen == ViewDashboard {
			m.Screen = ViewBrowse
		}
		m.Detail = nil
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.SearchFocused = false
		m.SearchInput.Blur()
		return m, nil
	case "enter":
		m.SearchFocused = false
		m.SearchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.SearchInput.Value()
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if after := m.SearchInput.Value(); after != before {
		// Controller debounces; each keystroke just updates state
		m.Controller.SetSearch(after)
	}
	return m, cmd
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Screen = ViewBrowse
		return m, nil
	case "tab", "shift+tab":
		m.LoginField = 1 - m.LoginField
		if m.LoginField == 0 {
			m.EmailInput.Focus()
			m.PassInput.Blur()
		} else {
			m.PassInput.Focus()
			m.EmailInput.Blur()
		}
		return m, textinput.Blink
	case "enter":
		return m, LoginCmd(m.AuthSvc, m.EmailInput.Value(), m.PassInput.Value())
	}

	var cmd tea.Cmd
	if m.LoginField == 0 {
		m.EmailInput, cmd = m.EmailInput.Update(msg)
	} else {
		m.PassInput, cmd = m.PassInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleSortField() {
	fields := []catalog.SortField{catalog.SortReleaseDate, catalog.SortTitle, catalog.SortRating, catalog.SortDuration}
	current := m.Snapshot.Filter.SortField
	next := fields[0]
	for i, f := range fields {
		if f == current {
			next = fields[(i+1)%len(fields)]
			break
		}
	}
	m.Controller.SetFilter(catalog.FilterUpdate{SortField: &next})
}

func (m *Model) toggleSortOrder() {
	order := catalog.OrderAsc
	if m.Snapshot.Filter.SortOrder == catalog.OrderAsc {
		order = catalog.OrderDesc
	}
	m.Controller.SetFilter(catalog.FilterUpdate{SortOrder: &order})
}

// View renders the active screen
func (m *Model) View() string {
	switch m.Screen {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewLogin:
		return m.renderLogin()
	default:
		return m.renderBrowse()
	}
}
