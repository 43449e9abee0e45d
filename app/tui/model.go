// Package tui provides the terminal front end built on bubbletea.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/app/favorites"
	"github.com/Semior001/newsdesk/app/feed"
	"github.com/Semior001/newsdesk/app/revisor"
	"github.com/Semior001/newsdesk/app/store"
	"github.com/Semior001/newsdesk/app/view"
	"github.com/Semior001/newsdesk/pkg/logx"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Deps are the controllers the UI works with.
type Deps struct {
	Log       *slog.Logger
	Feed      *feed.Controller
	Favorites *favorites.Manager
	View      *view.Selector
	Detail    *detail.View
}

// Options configure the start of the UI.
type Options struct {
	// OpenLast opens the last viewed article on start.
	OpenLast bool
	Now      func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	ctx  context.Context
	log  *slog.Logger
	feed *feed.Controller
	favs *favorites.Manager
	sel  *view.Selector
	det  *detail.View
	now  func() time.Time

	snap   feed.Snapshot
	cursor int
	offset int

	reading   *store.Article
	expansion *revisor.Expansion
	expanding bool
	notice    detail.Outcome
	status    string // error of the last action, cleared on key press

	searching bool
	input     textinput.Model
	spinner   spinner.Model

	styles styles
	width  int
	height int
}

// New makes a new UI model. Context is used for all requests made by the UI.
func New(ctx context.Context, deps Deps, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "search headlines"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:     ctx,
		log:     deps.Log,
		feed:    deps.Feed,
		favs:    deps.Favorites,
		sel:     deps.View,
		det:     deps.Detail,
		now:     opts.Now,
		snap:    deps.Feed.Snapshot(),
		input:   ti,
		spinner: sp,
		styles:  newStyles(deps.View.Theme()),
		width:   80,
		height:  24,
	}

	if opts.OpenLast {
		a, err := m.det.Resolve(ctx, nil)
		switch {
		case errors.Is(err, detail.ErrNoArticle):
			m.status = "No article found."
		case err != nil:
			m.status = err.Error()
		default:
			m.reading = &a
		}
	}

	return m
}

// Init starts the spinner and fetches the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.feed.Refresh()))
}

// fetch makes a command that requests the page of the ticket.
func (m Model) fetch(t feed.Ticket) tea.Cmd {
	ctx := logx.ContextWithRequestID(m.ctx, uuid.NewString())
	return func() tea.Msg {
		return feedLoaded{Result: m.feed.Fetch(ctx, t)}
	}
}

// start shows the loading state of the ticket and fetches it.
func (m Model) start(t feed.Ticket) (Model, tea.Cmd) {
	m.snap = m.feed.Snapshot()
	m.clampCursor()
	return m, m.fetch(t)
}

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case feedLoaded:
		if m.feed.Apply(msg.Result) {
			m.snap = m.feed.Snapshot()
			m.clampCursor()
		}
		return m, nil

	case shared:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.notice = msg.Outcome
		if m.notice.Until.IsZero() {
			return m, nil
		}
		until := m.notice.Until
		return m, tea.Tick(until.Sub(m.now()), func(time.Time) tea.Msg { return noticeExpired{Until: until} })

	case noticeExpired:
		if m.notice.Until.Equal(msg.Until) {
			m.notice = detail.Outcome{}
		}
		return m, nil

	case expanded:
		if m.reading == nil || m.reading.URL != msg.URL {
			return m, nil
		}
		m.expanding = false
		if msg.Err != nil {
			m.status = expandError(msg.Err)
			return m, nil
		}
		m.expansion = &msg.Expansion
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func expandError(err error) string {
	if errors.Is(err, detail.ErrNoExpander) {
		return "Full text is not available, article expansion is not configured."
	}
	return "Failed to load the full text: " + err.Error()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	m.status = ""

	switch {
	case m.searching:
		return m.handleSearchKey(msg)
	case m.reading != nil:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.input.Blur()
		m.cursor, m.offset = 0, 0
		return m.start(m.feed.SetQuery(m.input.Value()))
	case "esc":
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	controls := m.sel.FeedControls()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.sel.Toggle()
		m.cursor, m.offset = 0, 0
		return m, nil

	case "t":
		m.styles = newStyles(m.sel.ToggleTheme(m.ctx))
		return m, nil

	case "j", "down":
		if m.cursor < len(m.articles())-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "f":
		if a, ok := m.selected(); ok {
			m.favs.Toggle(m.ctx, a)
			m.clampCursor()
		}
		return m, nil

	case "enter":
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		resolved, err := m.det.Resolve(m.ctx, &a)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.open(resolved)
		return m, nil
	}

	if !controls {
		return m, nil
	}

	switch msg.String() {
	case "r":
		m.cursor, m.offset = 0, 0
		return m.start(m.feed.SetRegion(feed.NextRegion(m.snap.Params.Region)))
	case "c":
		m.cursor, m.offset = 0, 0
		return m.start(m.feed.SetCategory(feed.NextCategory(m.snap.Params.Category)))
	case "g":
		return m.start(m.feed.Refresh())
	case "m":
		t, ok := m.feed.LoadMore()
		if !ok {
			return m, nil
		}
		return m.start(t)
	case "/":
		m.searching = true
		m.input.SetValue(m.snap.Params.Query)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m *Model) open(a store.Article) {
	m.reading = &a
	m.expansion = nil
	m.expanding = false
	m.notice = detail.Outcome{}
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := *m.reading

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.reading = nil
		m.expansion = nil
		m.expanding = false
		m.notice = detail.Outcome{}
		m.clampCursor()
		return m, nil

	case "t":
		m.styles = newStyles(m.sel.ToggleTheme(m.ctx))
		return m, nil

	case "f":
		m.favs.Toggle(m.ctx, a)
		return m, nil

	case "s":
		return m, func() tea.Msg {
			out, err := m.det.Share(m.ctx, a)
			return shared{Outcome: out, Err: err}
		}

	case "y":
		return m, func() tea.Msg {
			out, err := m.det.CopyLink(m.ctx, a)
			return shared{Outcome: out, Err: err}
		}

	case "x":
		if m.expanding || m.expansion != nil {
			return m, nil
		}
		m.expanding = true
		ctx := logx.ContextWithRequestID(m.ctx, uuid.NewString())
		return m, func() tea.Msg {
			exp, err := m.det.Expand(ctx, a)
			return expanded{URL: a.URL, Expansion: exp, Err: err}
		}
	}

	return m, nil
}

// articles returns the list of the current view.
func (m Model) articles() []store.Article {
	return m.sel.Articles(m.snap, m.favs.List())
}

func (m Model) selected() (store.Article, bool) {
	arts := m.articles()
	if m.cursor < 0 || m.cursor >= len(arts) {
		return store.Article{}, false
	}
	return arts[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.articles())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Reading returns the article in the detail view, if any.
func (m Model) Reading() (store.Article, bool) {
	if m.reading == nil {
		return store.Article{}, false
	}
	return *m.reading, true
}

// Cursor returns the position of the cursor in the list.
func (m Model) Cursor() int { return m.cursor }

// Run runs the program until the user quits or the context is done.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
