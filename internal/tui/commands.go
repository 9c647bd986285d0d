package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/phishwise/phishwise/internal/browser"
	"github.com/phishwise/phishwise/internal/news"
)

// Engine commands. Each starts a load cycle and blocks (in the command
// goroutine, never the update loop) until the cycle settles. Intermediate
// transitions also arrive as SnapshotMsg via the engine's Notify hook, so a
// duplicate final snapshot here is harmless.

func (a *App) loadToday() tea.Cmd {
	done := a.engine.SelectToday(a.ctx)
	return func() tea.Msg { return SnapshotMsg(<-done) }
}

func (a *App) loadLatest() tea.Cmd {
	done := a.engine.SelectLatest(a.ctx)
	return func() tea.Msg { return SnapshotMsg(<-done) }
}

func (a *App) loadDate(date news.Date) tea.Cmd {
	done := a.engine.SelectDate(a.ctx, date)
	return func() tea.Msg { return SnapshotMsg(<-done) }
}

func (a *App) refresh() tea.Cmd {
	done := a.engine.Refresh(a.ctx)
	return func() tea.Msg { return SnapshotMsg(<-done) }
}

func (a *App) loadDates() tea.Cmd {
	a.engine.RefreshDates(a.ctx)
	return nil
}

func (a *App) openLink(link string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(link); err != nil {
			return errorMsg{err: err}
		}
		return statusMsg(MsgOpenedLink(link))
	}
}

// renderArticle produces the reader view content for one article.
func (a *App) renderArticle(article news.Article) tea.Cmd {
	return func() tea.Msg {
		var content strings.Builder
		content.WriteString(fmt.Sprintf("# %s\n\n", article.Title))
		content.WriteString(fmt.Sprintf("*%s — %s*\n\n", article.Source, article.FormattedDate()))

		if article.Link != "" {
			content.WriteString(fmt.Sprintf("[Read Online](%s)\n\n", article.Link))
		}

		content.WriteString("---\n\n")
		content.WriteString(article.Description)

		r, err := a.getRenderer()
		if err != nil {
			return articleRenderedMsg{content: "Error initializing renderer: " + err.Error()}
		}

		rendered, err := r.Render(content.String())
		if err != nil {
			return articleRenderedMsg{content: fmt.Sprintf("# Error\n\nFailed to render article: %s\n\nPress Escape to go back.", err.Error())}
		}

		return articleRenderedMsg{content: rendered}
	}
}

// getRenderer returns a cached glamour renderer sized for the current width.
func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 120 {
		wordWrapWidth = 120
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}
	if a.width > 0 && a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
