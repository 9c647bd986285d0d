package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// While the list filter input is active, every key belongs to it.
	if a.view == ViewDigest && a.articleList.FilterState() == list.Filtering {
		newListModel, cmd := a.articleList.Update(msg)
		a.articleList = newListModel
		return a, cmd
	}

	kb := a.config.Keys.Bindings

	if key == "ctrl+c" || key == kb.Quit {
		return a, tea.Quit
	}

	switch a.view {
	case ViewDigest:
		return a.handleDigestKey(key, msg)
	case ViewReader:
		return a.handleReaderKey(key, msg)
	case ViewDates:
		return a.handleDatesKey(key, msg)
	}
	return a, nil
}

func (a *App) handleDigestKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.config.Keys.Bindings

	switch key {
	case "enter":
		if item, ok := a.articleList.SelectedItem().(articleItem); ok {
			a.currentArticle = &item.article
			a.view = ViewReader
			a.loadingArticle = true
			return a, a.renderArticle(item.article)
		}
		return a, nil

	case kb.OpenLink:
		if item, ok := a.articleList.SelectedItem().(articleItem); ok {
			return a, a.openLink(item.article.Link)
		}
		return a, nil

	case kb.Today:
		a.status = MsgLoading
		return a, a.loadToday()

	case kb.Latest:
		a.status = MsgLoading
		return a, a.loadLatest()

	case kb.Refresh:
		a.status = MsgRefreshing
		return a, tea.Batch(a.refresh(), a.spin.Tick)

	case kb.Dates:
		a.view = ViewDates
		a.rebuildDates()
		return a, a.loadDates()

	case kb.Filter:
		a.cycleSourceFilter()
		return a, nil
	}

	newListModel, cmd := a.articleList.Update(msg)
	a.articleList = newListModel
	return a, cmd
}

func (a *App) handleReaderKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.config.Keys.Bindings

	switch key {
	case kb.Back:
		a.view = ViewDigest
		a.currentArticle = nil
		return a, nil

	case kb.OpenLink:
		if a.currentArticle != nil {
			return a, a.openLink(a.currentArticle.Link)
		}
		return a, nil
	}

	newViewport, cmd := a.viewport.Update(msg)
	a.viewport = newViewport
	return a, cmd
}

func (a *App) handleDatesKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.config.Keys.Bindings

	switch key {
	case "enter":
		if item, ok := a.dateList.SelectedItem().(dateItem); ok {
			a.view = ViewDigest
			a.status = MsgLoading
			return a, a.loadDate(item.date)
		}
		return a, nil

	case kb.Back:
		a.view = ViewDigest
		return a, nil

	case kb.Refresh:
		return a, a.loadDates()
	}

	newListModel, cmd := a.dateList.Update(msg)
	a.dateList = newListModel
	return a, cmd
}
