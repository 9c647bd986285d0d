package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgLoading      = "Loading…"
	MsgRefreshing   = "Refreshing…"
	MsgStale        = "Showing cached copy — network unavailable"
	MsgTodayPending = "Today's digest isn't out yet"
	MsgNoDates      = "No dates available yet"
)

func MsgTodayPendingHint(latestKey string) string {
	return fmt.Sprintf("%s — press %s for the latest one", MsgTodayPending, latestKey)
}

func MsgRetryHint(msg, retryKey string) string {
	return fmt.Sprintf("%s — press %s to retry", msg, retryKey)
}

func MsgArticleCount(n int) string {
	if n == 1 {
		return "1 article"
	}
	return fmt.Sprintf("%d articles", n)
}

func MsgOpenedLink(link string) string {
	return "Opened " + truncateMiddle(link, 60)
}

func MsgFilteredBySource(source string) string {
	if source == "" {
		return "Showing all sources"
	}
	return "Filtered by source: " + source
}
