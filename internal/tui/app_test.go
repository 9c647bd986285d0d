package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishwise/phishwise/internal/cache"
	"github.com/phishwise/phishwise/internal/config"
	"github.com/phishwise/phishwise/internal/engine"
	"github.com/phishwise/phishwise/internal/news"
)

// stubFetcher satisfies engine.Fetcher for tests that never execute commands.
type stubFetcher struct{}

func (stubFetcher) FetchToday(ctx context.Context) (*news.Digest, error) {
	return nil, news.ErrNotFound
}

func (stubFetcher) FetchLatest(ctx context.Context) (*news.Digest, error) {
	return nil, news.ErrNotFound
}

func (stubFetcher) FetchDigest(ctx context.Context, date news.Date) (*news.Digest, error) {
	return nil, news.ErrNotFound
}

func (stubFetcher) ListDigests(ctx context.Context, limit int) (*news.DigestList, error) {
	return &news.DigestList{}, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.TestConfig()
	eng := engine.New(stubFetcher{}, cache.NewStore(), 30)
	return NewApp(eng, cfg)
}

func testDigest() *news.Digest {
	return &news.Digest{
		Date:    "2025-01-21",
		Summary: "Two campaigns doing the rounds.",
		Articles: []news.Article{
			{
				Title:         "Older campaign report",
				Link:          "https://example.com/old",
				PublishedDate: "2025-01-20T08:00:00Z",
				Source:        "VendorBlog",
			},
			{
				Title:         "Fresh credential kit",
				Link:          "https://example.com/new",
				PublishedDate: "2025-01-21T10:30:00Z",
				Source:        "Krebs",
			},
		},
	}
}

func TestViewStateTransitions(t *testing.T) {
	tests := []struct {
		name         string
		initialView  View
		msg          tea.Msg
		expectedView View
		setupFunc    func(*App)
	}{
		{
			name:         "ViewDigest to ViewReader on Enter",
			initialView:  ViewDigest,
			msg:          tea.KeyMsg{Type: tea.KeyEnter},
			expectedView: ViewReader,
			setupFunc: func(a *App) {
				a.articles = testDigest().Articles
				a.articleList.SetItems([]list.Item{articleItem{article: a.articles[0]}})
			},
		},
		{
			name:         "ViewReader to ViewDigest on Escape",
			initialView:  ViewReader,
			msg:          tea.KeyMsg{Type: tea.KeyEsc},
			expectedView: ViewDigest,
		},
		{
			name:         "ViewDigest to ViewDates on 'd'",
			initialView:  ViewDigest,
			msg:          tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}},
			expectedView: ViewDates,
		},
		{
			name:         "ViewDates to ViewDigest on Escape",
			initialView:  ViewDates,
			msg:          tea.KeyMsg{Type: tea.KeyEsc},
			expectedView: ViewDigest,
		},
		{
			name:         "ViewDates to ViewDigest on Enter with a date selected",
			initialView:  ViewDates,
			msg:          tea.KeyMsg{Type: tea.KeyEnter},
			expectedView: ViewDigest,
			setupFunc: func(a *App) {
				a.dateList.SetItems([]list.Item{dateItem{date: "2025-01-20"}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.view = tt.initialView

			if tt.setupFunc != nil {
				tt.setupFunc(app)
			}

			updatedModel, _ := app.Update(tt.msg)
			updatedApp, ok := updatedModel.(*App)
			require.True(t, ok, "model should be *App")

			assert.Equal(t, tt.expectedView, updatedApp.view,
				"expected view to be %v but got %v", tt.expectedView, updatedApp.view)
		})
	}
}

func TestEnterOpensReaderWithSelectedArticle(t *testing.T) {
	app := newTestApp(t)
	app.articles = testDigest().Articles
	app.articleList.SetItems([]list.Item{articleItem{article: app.articles[0]}})

	updatedModel, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updatedApp := updatedModel.(*App)

	assert.Equal(t, ViewReader, updatedApp.view)
	require.NotNil(t, updatedApp.currentArticle)
	assert.Equal(t, "Older campaign report", updatedApp.currentArticle.Title)
	assert.True(t, updatedApp.loadingArticle)
	assert.NotNil(t, cmd, "should return a command to render the article")
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		app := newTestApp(t)
		_, cmd := app.Update(key)
		assert.NotNil(t, cmd, "%s should produce the quit command", key.String())
	}
}

func TestApplySnapshot(t *testing.T) {
	t.Run("phase change clears transient status and error", func(t *testing.T) {
		app := newTestApp(t)
		app.status = MsgLoading
		app.err = errors.New("stale error")

		app.applySnapshot(engine.Snapshot{Phase: engine.PhaseSuccess, Digest: testDigest()})

		assert.Empty(t, app.status)
		assert.NoError(t, app.err)
	})

	t.Run("new digest rebuilds article list newest first", func(t *testing.T) {
		app := newTestApp(t)

		app.applySnapshot(engine.Snapshot{Phase: engine.PhaseSuccess, Digest: testDigest()})

		require.Len(t, app.articles, 2)
		assert.Equal(t, "Fresh credential kit", app.articles[0].Title)
		assert.Equal(t, "Older campaign report", app.articles[1].Title)
		assert.Len(t, app.articleList.Items(), 2)
	})

	t.Run("new digest resets the source filter", func(t *testing.T) {
		app := newTestApp(t)
		app.applySnapshot(engine.Snapshot{Phase: engine.PhaseSuccess, Digest: testDigest()})
		app.cycleSourceFilter()
		require.NotEmpty(t, app.sourceFilter)

		other := testDigest()
		other.Date = "2025-01-22"
		app.applySnapshot(engine.Snapshot{Phase: engine.PhaseSuccess, Digest: other})

		assert.Empty(t, app.sourceFilter)
		assert.Len(t, app.articles, 2)
	})
}

func TestCycleSourceFilter(t *testing.T) {
	app := newTestApp(t)
	app.applySnapshot(engine.Snapshot{Phase: engine.PhaseSuccess, Digest: testDigest()})

	// Sources cycle alphabetically: all -> Krebs -> VendorBlog -> all.
	app.cycleSourceFilter()
	assert.Equal(t, "Krebs", app.sourceFilter)
	require.Len(t, app.articles, 1)
	assert.Equal(t, "Fresh credential kit", app.articles[0].Title)

	app.cycleSourceFilter()
	assert.Equal(t, "VendorBlog", app.sourceFilter)
	require.Len(t, app.articles, 1)
	assert.Equal(t, "Older campaign report", app.articles[0].Title)

	app.cycleSourceFilter()
	assert.Empty(t, app.sourceFilter)
	assert.Len(t, app.articles, 2)
}

func TestStatusBarPrecedence(t *testing.T) {
	app := newTestApp(t)
	app.width = 120

	t.Run("local error wins", func(t *testing.T) {
		app.err = errors.New("could not open browser")
		app.snap = engine.Snapshot{Phase: engine.PhaseFailed, Err: "server error"}
		assert.Contains(t, app.statusBar(), "could not open browser")
	})

	t.Run("engine failure shows retry hint", func(t *testing.T) {
		app.err = nil
		app.snap = engine.Snapshot{Phase: engine.PhaseFailed, Err: "too many requests, please try again later"}
		bar := app.statusBar()
		assert.Contains(t, bar, "too many requests")
		assert.Contains(t, bar, "retry")
	})

	t.Run("loading shows spinner text", func(t *testing.T) {
		app.snap = engine.Snapshot{Phase: engine.PhaseLoading}
		assert.Contains(t, app.statusBar(), MsgLoading)
	})

	t.Run("pending day shows the latest hint", func(t *testing.T) {
		app.snap = engine.Snapshot{Phase: engine.PhaseTodayPending}
		bar := app.statusBar()
		assert.Contains(t, bar, MsgTodayPending)
		assert.Contains(t, bar, app.config.Keys.Bindings.Latest)
	})

	t.Run("stale digest shows the cached banner", func(t *testing.T) {
		app.snap = engine.Snapshot{Phase: engine.PhaseStaleSuccess, Digest: testDigest()}
		assert.Contains(t, app.statusBar(), MsgStale)
	})

	t.Run("idle shows key hints", func(t *testing.T) {
		app.snap = engine.Snapshot{Phase: engine.PhaseSuccess, Digest: testDigest()}
		bar := app.statusBar()
		assert.Contains(t, bar, "quit")
		assert.Contains(t, bar, "today")
	})
}

func TestDigestHeaderMarksCachedCopy(t *testing.T) {
	app := newTestApp(t)
	app.width = 120

	app.applySnapshot(engine.Snapshot{Phase: engine.PhaseStaleSuccess, Digest: testDigest()})
	header := app.digestHeader()

	assert.Contains(t, header, "2025-01-21")
	assert.Contains(t, header, "(cached)")

	app.applySnapshot(engine.Snapshot{Phase: engine.PhaseSuccess, Digest: testDigest()})
	assert.False(t, strings.Contains(app.digestHeader(), "(cached)"))
}

func TestRebuildDatesMarksToday(t *testing.T) {
	app := newTestApp(t)
	today := news.Today()
	app.snap.AvailableDates = []news.Date{today, "2025-01-20"}

	app.rebuildDates()

	items := app.dateList.Items()
	require.Len(t, items, 2)
	first := items[0].(dateItem)
	assert.True(t, first.isToday)
	assert.Contains(t, first.Title(), "(today)")
}
