package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/genba/internal/calendar"
	"github.com/alexanderramin/genba/internal/cli/formatter"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/service"
	"github.com/alexanderramin/genba/internal/timeline"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// boardTop is the number of lines above the gantt grid.
const boardTop = 1

type boardKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Up      key.Binding
	Down    key.Binding
	Filter  key.Binding
	Workers key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev week")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next week")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Workers: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle workers")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Filter, k.Workers, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.Up, k.Down, k.Workers},
		{k.Filter, k.Reload, k.Help, k.Quit},
	}
}

// liveBoard lets the editor keep one Source/LocalState while snapshots are
// swapped underneath it.
type liveBoard struct {
	*service.Board
}

// chanNotifier hands notifications to the event loop, dropping them when
// the buffer is full.
type chanNotifier chan domain.Notification

func (c chanNotifier) Notify(n domain.Notification) {
	select {
	case c <- n:
	default:
	}
}

type (
	boardMsg struct {
		board *service.Board
		err   error
	}
	calendarMsg calendar.Calendar
	noteMsg     domain.Notification
	changeMsg   service.Change
)

type boardModel struct {
	app    *App
	ctx    context.Context
	live   *liveBoard
	window service.Window
	editor *timeline.Editor
	cal    calendar.Calendar
	gantt  formatter.Gantt

	keys        boardKeyMap
	help        help.Model
	filter      textinput.Model
	filtering   bool
	showWorkers bool
	scrollY     int
	width       int
	height      int

	notes       chanNotifier
	changes     chan service.Change
	unsubscribe []func()
	last        *domain.Notification
	stale       bool
}

// newBoardModel loads the current window and wires a drag editor that
// commits through the schedule service via dispatch.
func newBoardModel(ctx context.Context, app *App, dispatch timeline.Dispatcher) (*boardModel, error) {
	window := service.DefaultWindow(app.today(), app.Days)
	board, err := app.Boards.Snapshot(ctx, window)
	if err != nil {
		return nil, err
	}

	m := &boardModel{
		app:         app,
		ctx:         ctx,
		live:        &liveBoard{Board: board},
		window:      window,
		keys:        defaultBoardKeys(),
		help:        help.New(),
		filter:      textinput.New(),
		showWorkers: true,
		notes:       make(chanNotifier, 16),
		changes:     make(chan service.Change, 64),
	}
	m.filter.Prompt = "/"
	m.filter.Placeholder = "project or worker"

	m.editor, err = timeline.New(timeline.Config{
		DayWidth:   float64(app.dayWidth()),
		Source:     m.live,
		Local:      m.live,
		Persister:  app.Schedule,
		Notifier:   m.notes,
		Dispatcher: dispatch,
		Logger:     app.logger(),
	})
	if err != nil {
		return nil, err
	}

	for _, c := range service.Collections {
		m.unsubscribe = append(m.unsubscribe, app.Feed.Subscribe(c, func(ch service.Change) {
			select {
			case m.changes <- ch:
			default:
			}
		}))
	}
	m.render()
	return m, nil
}

// close drops feed subscriptions and any unfinished drag.
func (m *boardModel) close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
	m.editor.Reset()
}

func (m *boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCalendar(), m.waitForNote(), m.waitForChange())
}

func (m *boardModel) loadCalendar() tea.Cmd {
	return func() tea.Msg {
		return calendarMsg(m.app.loadCalendar(m.ctx, m.notes))
	}
}

func (m *boardModel) reload() tea.Cmd {
	ctx, boards, window := m.ctx, m.app.Boards, m.window
	return func() tea.Msg {
		b, err := boards.Snapshot(ctx, window)
		return boardMsg{board: b, err: err}
	}
}

func (m *boardModel) waitForNote() tea.Cmd {
	ch := m.notes
	return func() tea.Msg { return noteMsg(<-ch) }
}

func (m *boardModel) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg { return changeMsg(<-ch) }
}

// visible is the board as filtered for display. It shares projects and
// tasks with the live board, so local drag updates show through.
func (m *boardModel) visible() *service.Board {
	if term := m.filter.Value(); term != "" {
		return m.live.Filtered(term)
	}
	return m.live.Board
}

func (m *boardModel) render() {
	opts := formatter.GanttOptions{
		DayWidth: m.app.dayWidth(),
		Today:    m.app.today(),
		Calendar: m.cal,
		Workers:  m.showWorkers,
	}
	if d, ok := m.editor.Active(); ok {
		opts.Highlight = d.Item.ID
	}
	m.gantt = formatter.RenderGantt(m.visible(), opts)
}

func (m *boardModel) notify(n domain.Notification) {
	m.last = &n
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case boardMsg:
		if msg.err != nil {
			m.notify(domain.Notification{Message: "loading board: " + msg.err.Error(), Level: domain.NotifyError})
			return m, nil
		}
		if m.editor.State() == timeline.Dragging {
			m.stale = true
			return m, nil
		}
		m.live.Board = msg.board
		m.render()
		return m, nil

	case calendarMsg:
		m.cal = calendar.Calendar(msg)
		m.render()
		return m, nil

	case noteMsg:
		m.notify(domain.Notification(msg))
		return m, m.waitForNote()

	case changeMsg:
		if m.editor.State() == timeline.Dragging {
			m.stale = true
			return m, m.waitForChange()
		}
		return m, tea.Batch(m.reload(), m.waitForChange())
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.Type {
		case tea.KeyEnter:
			m.filtering = false
			m.filter.Blur()
		case tea.KeyEsc:
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.scrollY = 0
			m.render()
			return m, cmd
		}
		m.render()
		return m, nil
	}

	m.last = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		return m, m.scrollWindow(-7)
	case key.Matches(msg, m.keys.Next):
		return m, m.scrollWindow(7)
	case key.Matches(msg, m.keys.Today):
		m.window = service.DefaultWindow(m.app.today(), m.window.Days)
		return m, m.reload()
	case key.Matches(msg, m.keys.Up):
		m.scrollY = max(m.scrollY-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.scrollY = min(m.scrollY+1, max(len(m.gantt.Lines)-1, 0))
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Workers):
		m.showWorkers = !m.showWorkers
		m.render()
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.reload(), m.loadCalendar())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case msg.Type == tea.KeyEsc && m.filter.Value() != "":
		m.filter.SetValue("")
		m.render()
	}
	return m, nil
}

func (m *boardModel) scrollWindow(days int) tea.Cmd {
	if m.editor.State() == timeline.Dragging {
		return nil
	}
	m.window = m.window.Scroll(days, m.app.today())
	return m.reload()
}

// handleMouse feeds left-button press, motion and release into the editor
// and turns the wheel into vertical scrolling.
func (m *boardModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x := float64(msg.X)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollY = max(m.scrollY-1, 0)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollY = min(m.scrollY+1, max(len(m.gantt.Lines)-1, 0))

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		hit, ok := formatter.HitTest(m.visible(), m.gantt, m.app.dayWidth(), msg.X, msg.Y-boardTop+m.scrollY)
		if !ok {
			return nil
		}
		if err := m.editor.PointerDown(hit.Item, hit.Handle, x); err != nil {
			m.notify(domain.Notification{Message: err.Error(), Level: domain.NotifyError})
			return nil
		}
		m.last = nil
		m.render()

	case msg.Action == tea.MouseActionMotion:
		if m.editor.State() != timeline.Dragging {
			return nil
		}
		if _, err := m.editor.PointerMove(x); err == nil {
			m.render()
		}

	case msg.Action == tea.MouseActionRelease:
		if m.editor.State() != timeline.Dragging {
			return nil
		}
		if _, _, err := m.editor.PointerUp(m.ctx, x); err != nil {
			m.notify(domain.Notification{Message: err.Error(), Level: domain.NotifyError})
		}
		m.live.Relayout()
		m.render()
		if m.stale {
			m.stale = false
			return m.reload()
		}
	}
	return nil
}

func (m *boardModel) View() string {
	var b strings.Builder

	title := formatter.StyleHeader.Render("GENBA") + "  " +
		formatter.Dim(fmt.Sprintf("%s..%s", domain.FormatDate(m.window.Start), domain.FormatDate(m.window.End())))
	if m.filtering {
		title += "  " + m.filter.View()
	} else if term := m.filter.Value(); term != "" {
		title += "  " + formatter.StyleYellow.Render("filter: "+term)
	}
	b.WriteString(title + "\n")

	lines := m.gantt.Lines
	if m.scrollY < len(lines) {
		lines = lines[m.scrollY:]
	}
	if m.height > 0 {
		room := max(m.height-boardTop-2, 1)
		if len(lines) > room {
			lines = lines[:room]
		}
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *boardModel) statusLine() string {
	if d, ok := m.editor.Active(); ok {
		line := fmt.Sprintf("%s %s %s", d.Handle, d.Item.Kind, d.Item.ID)
		if p := m.editor.Preview(); len(p) > 0 {
			line += "  " + p[0].Range.String()
			if len(p) > 1 {
				line += fmt.Sprintf(" (+%d tasks)", len(p)-1)
			}
		}
		return formatter.StyleYellow.Render(line)
	}
	if m.last != nil {
		return formatter.NotificationLine(*m.last)
	}
	return formatter.Dim("drag a bar to move it, drag its first or last cell to resize")
}
