package ui

import (
	"reflect"

	"github.com/atomicstack/pkgsorter/internal/actions"
	"github.com/atomicstack/pkgsorter/internal/backend"
	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/data/dispatcher"
	"github.com/atomicstack/pkgsorter/internal/pipeline"
	"github.com/atomicstack/pkgsorter/internal/state"
	"github.com/atomicstack/pkgsorter/internal/tags"
	"github.com/atomicstack/pkgsorter/internal/theme"
	"github.com/atomicstack/pkgsorter/internal/ui/command"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the active input mode. Exactly one is active at a time.
type Mode int

const (
	ModeNormal Mode = iota
	ModeTagging
	ModeUntagging
	ModeSorting
	ModeFiltering
	ModeSearching
	ModeShowing
	ModeAction
)

func (m Mode) String() string {
	switch m {
	case ModeTagging:
		return "Tagging"
	case ModeUntagging:
		return "Untagging"
	case ModeSorting:
		return "Sorting"
	case ModeFiltering:
		return "Filtering"
	case ModeSearching:
		return "Searching"
	case ModeShowing:
		return "Showing"
	case ModeAction:
		return "Action"
	default:
		return "Normal"
	}
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Session is the user-controlled view state. It is not catalog data, so the
// outer loop hands the same Session to every program it starts.
type Session struct {
	TagFilters  pipeline.Filters
	RepoFilters pipeline.Filters
	ShowMode    catalog.ShowMode
	SortKey     catalog.SortKey
	Search      string
	Log         *uistate.OutputLog
}

// NewSession returns the initial view state.
func NewSession() *Session {
	return &Session{
		TagFilters:  pipeline.Filters{},
		RepoFilters: pipeline.Filters{},
		ShowMode:    catalog.ShowAllInstalled,
		SortKey:     catalog.SortName,
		Log:         uistate.NewOutputLog(),
	}
}

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Session    *Session
	Actions    []actions.Action
	Tags       tags.Store
	Load       *backend.Load
	// Clipboard receives the text copied with `y`. Defaults to the system
	// clipboard.
	Clipboard func(string) error
}

// Model implements the Bubble Tea model for the package dashboard.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	mode    Mode
	session *Session
	store   state.CatalogStore
	list    uistate.Cursor
	keys    keyMap

	actions   []actions.Action
	tagStore  tags.Store
	load      *backend.Load
	clipboard func(string) error
	pending   []string

	tagModal    *tagModal
	sortModal   *choiceModal
	showModal   *choiceModal
	filterModal *filterModal
	searchModal *searchModal
	actionModal *actionModal

	inputCursor cursor.Model
	logView     viewport.Model

	handlers   map[reflect.Type]msgHandler
	bus        *command.Bus
	dispatcher *dispatcher.Dispatcher
}

// NewModel initialises the UI with an empty catalog. Data arrives through
// the load in opts.
func NewModel(opts Options) *Model {
	session := opts.Session
	if session == nil {
		session = NewSession()
	}
	if session.Log == nil {
		session.Log = uistate.NewOutputLog()
	}
	if session.TagFilters == nil {
		session.TagFilters = pipeline.Filters{}
	}
	if session.RepoFilters == nil {
		session.RepoFilters = pipeline.Filters{}
	}
	store := state.NewCatalogStore()
	m := &Model{
		showFooter:  opts.ShowFooter,
		mode:        ModeNormal,
		session:     session,
		store:       store,
		list:        uistate.NewCursor(),
		keys:        defaultKeyMap(),
		actions:     opts.Actions,
		tagStore:    opts.Tags,
		load:        opts.Load,
		clipboard:   opts.Clipboard,
		tagModal:    newTagModal(),
		sortModal:   newChoiceModal("sort"),
		showModal:   newChoiceModal("show"),
		filterModal: newFilterModal(),
		searchModal: &searchModal{},
		actionModal: newActionModal(),
		bus:         command.New(),
		dispatcher:  dispatcher.New(store),
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	c.SetMode(cursor.CursorStatic)
	c.Blink = false
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	m.inputCursor = c
	m.logView = viewport.New(0, 0)
	m.syncLayout()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.Loading() {
		return loadTick()
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(loadTickMsg{}):       m.handleLoadTickMsg,
		reflect.TypeOf(tagResultMsg{}):      m.handleTagResultMsg,
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

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncLayout()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Mode returns the active input mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Session returns the view state shared across cycles.
func (m *Model) Session() *Session {
	return m.session
}

// Visible returns the package list currently on screen.
func (m *Model) Visible() []catalog.Package {
	return m.store.Visible()
}

// Loading reports whether the background load has not been applied yet.
func (m *Model) Loading() bool {
	return m.load != nil && !m.store.Loaded()
}

// PendingCommand returns the command the user asked to run, if the program
// ended for that reason.
func (m *Model) PendingCommand() ([]string, bool) {
	if len(m.pending) == 0 {
		return nil, false
	}
	return append([]string(nil), m.pending...), true
}

// Selected returns the highlighted package.
func (m *Model) Selected() (catalog.Package, bool) {
	visible := m.store.Visible()
	if !m.list.Valid(len(visible)) {
		return catalog.Package{}, false
	}
	return visible[m.list.Index], true
}

func (m *Model) logInfo(text string) {
	m.session.Log.Info(text)
	traceMessage(uistate.Info, text)
}

func (m *Model) logWarn(text string) {
	m.session.Log.Warn(text)
	traceMessage(uistate.Warning, text)
}

func (m *Model) logError(text string) {
	m.session.Log.Error(text)
	traceMessage(uistate.Error, text)
}
