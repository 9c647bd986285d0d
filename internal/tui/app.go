package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/phishwise/phishwise/internal/config"
	"github.com/phishwise/phishwise/internal/engine"
	"github.com/phishwise/phishwise/internal/news"
)

// App is a pure observer of the digest engine: every piece of digest state it
// renders arrives as a SnapshotMsg, and key presses only ever issue engine
// calls. The engine does not know the TUI exists.
type App struct {
	config *config.Config
	engine *engine.Engine
	ctx    context.Context

	articleList list.Model
	dateList    list.Model
	viewport    viewport.Model
	spin        spinner.Model

	view View
	snap engine.Snapshot

	articles       []news.Article
	sourceFilter   string
	currentArticle *news.Article

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	loadingArticle  bool

	width  int
	height int
	status string
	err    error
}

func NewApp(eng *engine.Engine, cfg *config.Config) *App {
	c := cfg.UI.Colors
	ApplyColors(c.Primary, c.Secondary, c.Accent, c.Text, c.Muted, c.Error, c.Success, c.Warning)

	articleList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	articleList.Title = "› articles"
	articleList.SetShowStatusBar(false)
	articleList.SetFilteringEnabled(true)
	articleList.SetShowHelp(true)

	dateList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	dateList.Title = "› digest dates"
	dateList.SetShowStatusBar(false)
	dateList.SetFilteringEnabled(false)
	dateList.SetShowHelp(true)

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		config:      cfg,
		engine:      eng,
		ctx:         context.Background(),
		articleList: articleList,
		dateList:    dateList,
		viewport:    vp,
		spin:        sp,
		view:        ViewDigest,
		snap:        eng.Snapshot(),
	}
}

// SnapshotMsg carries an engine snapshot into the update loop. The engine's
// Notify hook is wired to tea.Program.Send with this type.
type SnapshotMsg engine.Snapshot

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadToday(),
		a.loadDates(),
		a.spin.Tick,
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.articleList.SetSize(msg.Width, msg.Height-headerHeight-statusBarHeight)
		a.dateList.SetSize(msg.Width, msg.Height-statusBarHeight)
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - statusBarHeight

	case tea.KeyMsg:
		return a.handleKey(msg)

	case SnapshotMsg:
		a.applySnapshot(engine.Snapshot(msg))
		if a.snap.Loading() {
			cmds = append(cmds, a.spin.Tick)
		}

	case spinner.TickMsg:
		if a.snap.Loading() {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			cmds = append(cmds, cmd)
		}

	case articleRenderedMsg:
		if a.view == ViewReader {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.loadingArticle = false
		}

	case statusMsg:
		a.status = string(msg)

	case errorMsg:
		a.err = msg.err
	}

	switch a.view {
	case ViewDigest:
		newListModel, cmd := a.articleList.Update(msg)
		a.articleList = newListModel
		cmds = append(cmds, cmd)
	case ViewDates:
		newListModel, cmd := a.dateList.Update(msg)
		a.dateList = newListModel
		cmds = append(cmds, cmd)
	case ViewReader:
		switch msg.(type) {
		case tea.KeyMsg, tea.WindowSizeMsg, tea.MouseMsg:
			newViewport, cmd := a.viewport.Update(msg)
			a.viewport = newViewport
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

// applySnapshot folds a new engine snapshot into the view state.
func (a *App) applySnapshot(snap engine.Snapshot) {
	prev := a.snap
	a.snap = snap

	if snap.Phase != prev.Phase {
		a.status = ""
		a.err = nil
	}

	if snap.Digest != prev.Digest {
		a.sourceFilter = ""
		a.rebuildArticles()
	}

	if a.view == ViewDates {
		a.rebuildDates()
	}
}

// rebuildArticles re-sorts and re-filters the article list from the current
// digest, newest first, honoring the source filter.
func (a *App) rebuildArticles() {
	a.articles = nil
	if a.snap.Digest != nil {
		for _, art := range a.snap.Digest.SortedArticles() {
			if a.sourceFilter != "" && art.Source != a.sourceFilter {
				continue
			}
			a.articles = append(a.articles, art)
		}
	}

	items := make([]list.Item, len(a.articles))
	for i, art := range a.articles {
		items[i] = articleItem{article: art}
	}
	a.articleList.SetItems(items)
}

func (a *App) rebuildDates() {
	today := news.Today()
	items := make([]list.Item, len(a.snap.AvailableDates))
	for i, d := range a.snap.AvailableDates {
		items[i] = dateItem{date: d, isToday: d == today, cached: a.engine != nil && a.digestCached(d)}
	}
	a.dateList.SetItems(items)
}

func (a *App) digestCached(d news.Date) bool {
	// The date picker marks days already fetched this session.
	return a.snap.Digest != nil && a.snap.Digest.Date == d
}

// cycleSourceFilter steps through All -> each source -> All.
func (a *App) cycleSourceFilter() {
	if a.snap.Digest == nil {
		return
	}
	sources := a.snap.Digest.SourceNames()
	if len(sources) == 0 {
		return
	}

	next := ""
	if a.sourceFilter == "" {
		next = sources[0]
	} else {
		for i, s := range sources {
			if s == a.sourceFilter && i+1 < len(sources) {
				next = sources[i+1]
				break
			}
		}
	}
	a.sourceFilter = next
	a.rebuildArticles()
	a.status = MsgFilteredBySource(next)
}

type articleItem struct {
	article news.Article
}

func (i articleItem) Title() string {
	return i.article.Title
}

func (i articleItem) Description() string {
	desc := truncateEnd(i.article.Description, 80)
	meta := SourceStyle.Render(i.article.Source) + TimeStyle.Render(" • "+i.article.FormattedDate())
	if desc == "" {
		return meta
	}
	return HelpStyle.Render(desc) + " " + meta
}

func (i articleItem) FilterValue() string {
	return i.article.Title + " " + i.article.Description + " " + i.article.Source
}

type dateItem struct {
	date    news.Date
	isToday bool
	cached  bool
}

func (i dateItem) Title() string {
	t := i.date.String()
	if i.isToday {
		t += "  (today)"
	}
	return t
}

func (i dateItem) Description() string {
	if i.cached {
		return "currently shown"
	}
	return "press enter to load"
}

func (i dateItem) FilterValue() string { return i.date.String() }

type articleRenderedMsg struct {
	content string
}

type statusMsg string

type errorMsg struct {
	err error
}
