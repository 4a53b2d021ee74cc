package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/movie-booth/internal/booking"
	"github.com/atomicstack/movie-booth/internal/data/dispatcher"
	"github.com/atomicstack/movie-booth/internal/format"
	"github.com/atomicstack/movie-booth/internal/lifecycle"
	"github.com/atomicstack/movie-booth/internal/task"
	"github.com/atomicstack/movie-booth/internal/theme"
	uistate "github.com/atomicstack/movie-booth/internal/ui/state"
	"github.com/atomicstack/movie-booth/internal/view"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Panel selects which list the screen shows.
type Panel int

const (
	PanelMovies Panel = iota
	PanelHistory
)

func (p Panel) String() string {
	if p == PanelHistory {
		return "history"
	}
	return "movies"
}

const (
	moviesPlaceholder  = "Hiện không có phim nào."
	historyPlaceholder = "Bạn chưa có lịch sử đặt vé."
	noRoomMessage      = "Phim này hiện không có phòng chiếu."
	notBookableMessage = "Phòng chiếu của phim này hiện không bán vé."
	roomRetryMessage   = "Chưa tải được phòng chiếu, nhấn d để thử lại."
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// roomLookup is the per-row detail: the room showing a movie, if any.
type roomLookup struct {
	Room  booking.Room
	Found bool
}

// Config wires the model to its collaborators. Dispatcher, Runner and Gate
// are created when nil.
type Config struct {
	Services   booking.Services
	Dispatcher *dispatcher.Dispatcher
	Runner     *task.Runner
	Gate       *lifecycle.Gate
	CustomerID int
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model is the customer screen. It is the only writer of view state; every
// background result reaches it through the dispatcher.
type Model struct {
	services   booking.Services
	dispatcher *dispatcher.Dispatcher
	runner     *task.Runner
	gate       *lifecycle.Gate
	customerID int
	keys       KeyMap

	panel       Panel
	movies      *view.View[[]booking.Movie]
	movieList   *uistate.List
	rooms       map[int]*view.View[roomLookup]
	history     *view.View[[]booking.Record]
	historyList *uistate.List
	sortOrder   booking.SortOrder
	bookings    map[int]bool

	clock       string
	errMsg      string
	infoMsg     string
	filter      textinput.Model
	filtering   bool
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	listening   bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the screen. No fetch is issued until Init.
func NewModel(cfg Config) *Model {
	d := cfg.Dispatcher
	if d == nil {
		d = dispatcher.New()
	}
	gate := cfg.Gate
	if gate == nil {
		gate = lifecycle.NewGate()
	}
	runner := cfg.Runner
	if runner == nil {
		runner = task.New(d, task.Options{})
	}
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Placeholder = "lọc theo tên phim"
	ti.CharLimit = 64
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.FilterPrompt != nil {
		ti.PromptStyle = *styles.FilterPrompt
	}
	if styles.Filter != nil {
		ti.TextStyle = *styles.Filter
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FilterPlaceholder
	}
	m := &Model{
		services:    cfg.Services,
		dispatcher:  d,
		runner:      runner,
		gate:        gate,
		customerID:  cfg.CustomerID,
		keys:        DefaultKeyMap,
		panel:       PanelMovies,
		movies:      view.New("movies", view.EmptySlice[booking.Movie]),
		movieList:   uistate.NewList("movies", nil),
		rooms:       map[int]*view.View[roomLookup]{},
		history:     view.New("history", view.EmptySlice[booking.Record]),
		historyList: uistate.NewList("history", nil),
		sortOrder:   booking.SortNewest,
		bookings:    map[int]bool{},
		filter:      ti,
		showFooter:  cfg.ShowFooter,
		verbose:     cfg.Verbose,
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It starts the dispatcher pump and
// the initial catalog load.
func (m *Model) Init() tea.Cmd {
	m.listening = true
	m.start()
	return waitForDispatch(m.dispatcher)
}

func (m *Model) start() {
	m.refreshMovies()
}

// Tick updates the clock line. It runs on the consumer.
func (m *Model) Tick(t time.Time) {
	m.clock = format.Clock(t)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(dispatchMsg{}):       m.handleDispatchMsg,
		reflect.TypeOf(dispatchDoneMsg{}):   m.handleDispatchDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Panel returns the visible panel.
func (m *Model) Panel() Panel {
	return m.panel
}

// SortOrder returns the history sort order.
func (m *Model) SortOrder() booking.SortOrder {
	return m.sortOrder
}

// Shutdown closes the gate so no further result mutates the screen.
func (m *Model) Shutdown() {
	m.gate.Shutdown()
}
