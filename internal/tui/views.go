package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight    = 3
	statusBarHeight = 2
)

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewDigest:
		content = a.digestView()
	case ViewReader:
		content = a.readerView()
	case ViewDates:
		content = a.datesView()
	}

	separatorWidth := a.width
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := HelpStyle.Render(strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.statusBar())
}

func (a *App) digestView() string {
	if a.snap.Digest == nil {
		var msg string
		switch {
		case a.snap.Loading():
			msg = a.spin.View() + " " + HelpStyle.Render(MsgLoading)
		case a.snap.TodayPending():
			msg = StaleStyle.Render(MsgTodayPendingHint(a.config.Keys.Bindings.Latest))
		case a.snap.Err != "":
			msg = ErrorStyle.Render("✗ " + a.snap.Err)
		default:
			msg = GetWelcomeMessage()
		}
		return renderCentered(a.width, a.height-statusBarHeight, msg)
	}

	return lipgloss.JoinVertical(
		lipgloss.Top,
		a.digestHeader(),
		a.articleList.View(),
	)
}

func (a *App) digestHeader() string {
	d := a.snap.Digest

	title := "› phishing digest — " + d.Date.String()
	if a.snap.Stale() {
		title += "  (cached)"
	}

	meta := MsgArticleCount(len(a.articles))
	if a.sourceFilter != "" {
		meta += " • source: " + a.sourceFilter
	}

	subtitle := truncateEnd(d.Summary, a.width-len(meta)-6)
	if subtitle != "" {
		subtitle += "  •  "
	}
	subtitle += meta

	return renderHeader(title, subtitle, a.width)
}

func (a *App) readerView() string {
	if a.loadingArticle {
		return renderCentered(a.width, a.height-statusBarHeight,
			HelpStyle.Render(MsgLoading))
	}
	return a.viewport.View()
}

func (a *App) datesView() string {
	if len(a.snap.AvailableDates) == 0 {
		return renderCentered(a.width, a.height-statusBarHeight,
			HelpStyle.Render(MsgNoDates))
	}
	return a.dateList.View()
}

// statusBar renders the single bottom line: errors first, then transient
// status, then the phase banner, then key hints.
func (a *App) statusBar() string {
	kb := a.config.Keys.Bindings
	line := lipgloss.NewStyle().Width(a.width).Padding(0, 1)

	if a.err != nil {
		return line.Render(ErrorStyle.Render("✗ " + a.err.Error()))
	}

	if a.snap.Err != "" {
		return line.Render(ErrorStyle.Render("✗ " + MsgRetryHint(a.snap.Err, kb.Refresh)))
	}

	if a.snap.Loading() {
		return line.Render(a.spin.View() + " " + HelpStyle.Render(MsgLoading))
	}

	if a.status != "" {
		return line.Render(HelpStyle.Render(a.status))
	}

	if a.snap.TodayPending() {
		return line.Render(StaleStyle.Render("◌ " + MsgTodayPendingHint(kb.Latest)))
	}

	if a.snap.Stale() {
		return line.Render(StaleStyle.Render("⚠ " + MsgStale))
	}

	return line.Render(HelpStyle.Render(a.keyHints()))
}

func (a *App) keyHints() string {
	kb := a.config.Keys.Bindings

	var hints []string
	switch a.view {
	case ViewDigest:
		hints = []string{
			"enter: read",
			kb.OpenLink + ": open link",
			kb.Today + ": today",
			kb.Latest + ": latest",
			kb.Dates + ": dates",
			kb.Filter + ": filter source",
			kb.Refresh + ": refresh",
			kb.Quit + ": quit",
		}
	case ViewReader:
		hints = []string{
			kb.OpenLink + ": open link",
			kb.Back + ": back",
			kb.Quit + ": quit",
		}
	case ViewDates:
		hints = []string{
			"enter: load digest",
			kb.Refresh + ": refresh list",
			kb.Back + ": back",
			kb.Quit + ": quit",
		}
	}
	return strings.Join(hints, " • ")
}

// renderHeader returns a consistently styled header with a muted subtitle.
func renderHeader(title, subtitle string, width int) string {
	title = truncateEnd(title, width-2)
	subtitle = truncateEnd(subtitle, width-2)
	rows := []string{HeaderStyle.Render(title)}
	if subtitle != "" {
		rows = append(rows, HelpStyle.Render(subtitle))
	}
	rows = append(rows, "")
	return lipgloss.JoinVertical(lipgloss.Top, rows...)
}

// renderCentered centers the provided content within the given box.
func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
