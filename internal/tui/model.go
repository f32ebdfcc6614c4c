package tui

import (
	"context"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/rosterview/internal/loader"
	"github.com/rshade/rosterview/internal/logging"
	"github.com/rshade/rosterview/internal/render"
	"github.com/rshade/rosterview/internal/roster"
	"github.com/rshade/rosterview/internal/session"
	"github.com/rshade/rosterview/internal/state"
)

// ViewState is which screen the model shows.
type ViewState int

const (
	// ViewStateList shows the table, or the spinner or error for the load.
	ViewStateList ViewState = iota
	// ViewStateDetail shows one record.
	ViewStateDetail
	// ViewStateQuitting is set once the user has asked to leave.
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keyLeft  = "left"
	keyRight = "right"
	keyH     = "h"
	keyL     = "l"
	keyP     = "p"
	keyN     = "n"
	keyHome  = "home"
	keyEnd   = "end"
	keyC     = "c"
	keyG     = "g"
	keyX     = "x"
)

// Layout.
const (
	defaultWidth  = 120
	defaultHeight = 30
	borderPadding = 4

	colWidthID       = 4
	colWidthImage    = 22
	colWidthName     = 22
	colWidthGender   = 8
	colWidthAge      = 4
	colWidthLocation = 28
	colWidthTitle    = 24
)

// LoadedMsg carries the actions that end a load.
type LoadedMsg struct {
	Actions []state.Action
}

// Model is the Bubble Tea model for the roster browser.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type Model struct {
	ctx    context.Context
	loader *loader.Loader

	app  state.AppState
	view session.View

	mode     ViewState
	table    table.Model
	selected roster.Record

	loading *LoadingState

	width  int
	height int
}

// NewModel creates a browser that loads through l. The load is already
// marked as started; Init issues the fetch.
func NewModel(ctx context.Context, l *loader.Loader) Model {
	m := Model{
		ctx:     ctx,
		loader:  l,
		app:     state.Reduce(state.Initial(), loader.Begin()...),
		mode:    ViewStateList,
		loading: NewLoadingState(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.refresh()
	return m
}

// Init starts the spinner and the load (Bubble Tea interface).
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	ctx, l := m.ctx, m.loader
	return func() tea.Msg {
		records, err := l.Load(ctx)
		return LoadedMsg{Actions: loader.Finish(records, err)}
	}
}

// State returns the current session state.
func (m Model) State() state.AppState {
	return m.app
}

// Snapshot returns the projection the next frame is drawn from.
func (m Model) Snapshot() session.View {
	return m.view
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil
	case LoadedMsg:
		for _, a := range msg.Actions {
			m.dispatch(a)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.app.Loading() {
		return m, m.loading.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.mode = ViewStateQuitting
		return m, tea.Quit
	}

	if m.mode == ViewStateDetail {
		if msg.String() == keyEsc {
			m.mode = ViewStateList
			m.table.Focus()
		}
		return m, nil
	}

	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.app.Page
	total := m.view.TotalPages()

	switch key := msg.String(); key {
	case keyLeft, keyH, keyP:
		if page > 1 {
			m.dispatch(state.SetPage{Page: page - 1})
		}
	case keyRight, keyL, keyN:
		if page < total {
			m.dispatch(state.SetPage{Page: page + 1})
		}
	case keyHome:
		if page != 1 {
			m.dispatch(state.SetPage{Page: 1})
		}
	case keyEnd:
		if total > 0 && page != total {
			m.dispatch(state.SetPage{Page: total})
		}
	case keyC:
		m.dispatch(state.SetCountry{Country: nextOption(m.view.Countries, m.app.Filter.Country)})
	case keyG:
		m.dispatch(state.SetGender{Gender: nextOption(m.view.Genders, m.app.Filter.Gender)})
	case keyX:
		if !m.app.Filter.IsEmpty() {
			m.dispatch(state.SetCountry{})
			m.dispatch(state.SetGender{})
		}
	case keyEnter:
		cursor := m.table.Cursor()
		if cursor >= 0 && cursor < len(m.view.Records) {
			m.selected = m.view.Records[cursor]
			m.mode = ViewStateDetail
			m.table.Blur()
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && len(key) == 1 {
			if n >= 1 && n <= total && n != page {
				m.dispatch(state.SetPage{Page: n})
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// dispatch applies a and redraws from the new state.
func (m *Model) dispatch(a state.Action) {
	m.app = state.Transition(m.app, a)
	m.refresh()

	log := logging.FromContext(m.ctx)
	log.Debug().Ctx(m.ctx).
		Str("component", "tui").
		Str("operation", "dispatch").
		Stringer("action", a).
		Str("status", m.app.Status.String()).
		Int("page", m.app.Page).
		Msg("applied action")
}

func (m *Model) refresh() {
	m.view = session.Project(m.app)
	m.rebuildTable()
}

func (m *Model) rebuildTable() {
	m.table = m.buildTable()
}

func (m *Model) buildTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: colWidthID},
		{Title: "Image", Width: colWidthImage},
		{Title: "Full Name", Width: colWidthName},
		{Title: "Gender", Width: colWidthGender},
		{Title: "Age", Width: colWidthAge},
		{Title: "Location", Width: colWidthLocation},
		{Title: "Designation", Width: colWidthTitle},
	}

	rows := make([]table.Row, len(m.view.Records))
	for i, r := range m.view.Records {
		rows[i] = table.Row{
			strconv.Itoa(r.ID),
			render.Truncate(r.Image, colWidthImage),
			render.Truncate(r.FullName(), colWidthName),
			label(r.Gender),
			strconv.Itoa(r.Age),
			render.Truncate(r.Location(), colWidthLocation),
			render.Truncate(r.Company.Title, colWidthTitle),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(m.mode == ViewStateList),
		table.WithHeight(state.PageSize+1),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// nextOption cycles "" → options[0] → ... → options[n-1] → "".
// An unknown current value restarts the cycle at options[0].
func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return ""
	}
	if current == "" {
		return options[0]
	}
	i := slices.Index(options, current)
	if i < 0 {
		return options[0]
	}
	if i == len(options)-1 {
		return ""
	}
	return options[i+1]
}
