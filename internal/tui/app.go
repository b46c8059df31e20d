package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pullfeed/internal/domain"
	"github.com/mmcdole/pullfeed/internal/feed"
	"github.com/mmcdole/pullfeed/internal/pull"
	"github.com/mmcdole/pullfeed/internal/scheduler"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

const statusDuration = 3 * time.Second

// ErrNoFeed is returned by NewModel without a feed service
var ErrNoFeed = errors.New("tui: feed service is required")

// session holds state written from attacher callbacks. It is shared by all
// copies of the model.
type session struct {
	pendingPull bool
	headerState pull.HeaderState
}

// Options configures NewModel
type Options struct {
	Feed        *feed.Service
	Pull        pull.Config
	Clock       clockz.Clock // nil means clockz.RealClock
	Logger      *slog.Logger
	Events      *capitan.Capitan // nil means capitan.Default()
	HistorySize int
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Feed     *feed.Service
	Attacher *pull.Attacher

	// Components
	list       *feedList
	header     *Header
	dispatcher *Dispatcher
	session    *session
	filter     textinput.Model
	filtering  bool

	clock  clockz.Clock
	logger *slog.Logger

	// Data
	history     []domain.RefreshRecord
	historySize int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
	ShowHelp    bool
}

// NewModel creates the application model and its pull attacher. Call Close
// once the program has exited.
func NewModel(opts Options) (Model, error) {
	if opts.Feed == nil {
		return Model{}, ErrNoFeed
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockz.RealClock
	}

	dispatcher := NewDispatcher(16)
	list := newFeedList()
	header := NewHeader(opts.Feed.Name())
	sess := &session{headerState: pull.HeaderHidden}

	attacher, err := pull.New(list, opts.Pull,
		pull.WithPresenter(header),
		pull.WithEnvironment(pull.DefaultEnvironment{Layouts: []string{pull.DefaultHeaderLayout, CompactLayout}}),
		pull.WithScheduler(scheduler.New(clock, dispatcher.Dispatch)),
		pull.WithObserver(pull.HeaderObserverFunc(func(_ pull.Header, state pull.HeaderState) {
			sess.headerState = state
		})),
		pull.WithLogger(logger),
		pull.WithEvents(opts.Events),
	)
	if err != nil {
		dispatcher.Close()
		return Model{}, err
	}

	err = attacher.Register(list, nil, pull.RefreshFunc(func(pull.Surface) {
		sess.pendingPull = true
	}))
	if err != nil {
		attacher.Destroy()
		dispatcher.Close()
		return Model{}, err
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.CharLimit = 64

	historySize := opts.HistorySize
	if historySize <= 0 {
		historySize = 5
	}

	return Model{
		Feed:        opts.Feed,
		Attacher:    attacher,
		list:        list,
		header:      header,
		dispatcher:  dispatcher,
		session:     sess,
		filter:      ti,
		clock:       clock,
		logger:      logger.With("component", "tui"),
		historySize: historySize,
	}, nil
}

// Close destroys the attacher and releases the dispatcher.
func (m Model) Close() {
	m.Attacher.Destroy()
	m.dispatcher.Close()
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dispatcher.Wait(),
		LoadItemsCmd(m.Feed),
		LoadHistoryCmd(m.Feed, m.historySize),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.list.SetRows(m.listRows())
		m.filter.Width = max(10, msg.Width-6)
		if err := m.Attacher.OnEnvironmentChanged(msg); err != nil {
			m.logger.Debug("environment change ignored", "error", err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		return m, m.header.UpdateSpinner(msg)

	case DispatchMsg:
		if msg.Fn != nil {
			msg.Fn()
		}
		return m, tea.Batch(m.dispatcher.Wait(), m.afterPull())

	case ItemsLoadedMsg:
		m.applyFilter()
		if m.list.Len() == 0 {
			return m, m.startManualRefresh()
		}
		return m, nil

	case RefreshDoneMsg:
		return m.handleRefreshDone(msg)

	case HistoryLoadedMsg:
		m.history = msg.Records
		return m, nil

	case ErrMsg:
		m.logger.Error(msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if delta, ok := wheelDelta(msg); ok {
		m.list.Scroll(delta)
		return m, nil
	}

	ev, ok := pointerEvent(msg, listTop)
	if !ok {
		return m, nil
	}
	dragging, err := m.list.Touch(ev)
	if err != nil {
		m.logger.Debug("pointer sample rejected", "error", err)
	}
	if ev.Action == pull.ActionDown && !dragging {
		m.list.SelectRow(int(ev.Y) - 1)
	}
	return m, m.afterPull()
}

func (m Model) handleRefreshDone(msg RefreshDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, domain.ErrRefreshInProgress) {
		return m, nil
	}
	if err := m.Attacher.SetRefreshComplete(); err != nil {
		m.logger.Debug("refresh completion ignored", "error", err)
	}
	m.applyFilter()

	var status tea.Cmd
	if msg.Err != nil {
		status = m.setStatus("refresh failed: "+msg.Err.Error(), true)
	} else {
		status = m.setStatus(fmt.Sprintf("%d new items", msg.Record.Added), false)
	}
	return m, tea.Batch(status, LoadHistoryCmd(m.Feed, m.historySize))
}

// startManualRefresh shows the refresh header and fetches. The attacher
// does not call the refresh callback for programmatic refreshes.
func (m Model) startManualRefresh() tea.Cmd {
	if m.Attacher.IsRefreshing() {
		return nil
	}
	if err := m.Attacher.SetRefreshing(true); err != nil || !m.Attacher.IsRefreshing() {
		return nil
	}
	return tea.Batch(RefreshCmd(m.Feed, domain.TriggerManual), m.afterPull())
}

// afterPull collects the commands requested by attacher callbacks.
func (m Model) afterPull() tea.Cmd {
	var cmds []tea.Cmd
	if m.session.pendingPull {
		m.session.pendingPull = false
		cmds = append(cmds, RefreshCmd(m.Feed, domain.TriggerPull))
	}
	if cmd := m.header.TakeTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, statusDuration)
}
