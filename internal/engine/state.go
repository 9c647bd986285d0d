package engine

import (
	"errors"

	"github.com/phishwise/phishwise/internal/news"
)

// Phase is the state of the current load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	// PhaseSuccess: a fresh digest was confirmed from the network this cycle.
	PhaseSuccess
	// PhaseStaleSuccess: the network failed but a cached digest is shown; the
	// error is suppressed in favor of a staleness indicator.
	PhaseStaleSuccess
	// PhaseTodayPending: today's digest has not been published upstream yet.
	// An expected condition, not an error.
	PhaseTodayPending
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseStaleSuccess:
		return "stale"
	case PhaseTodayPending:
		return "today-pending"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is the engine's observable projection: everything the UI layer
// needs, and nothing else. Values are immutable once handed out.
type Snapshot struct {
	Phase     Phase
	Selection Selection
	Digest    *news.Digest
	// Err is a user-displayable message, set only in PhaseFailed.
	Err            string
	AvailableDates []news.Date
}

func (s Snapshot) Loading() bool      { return s.Phase == PhaseLoading }
func (s Snapshot) Stale() bool        { return s.Phase == PhaseStaleSuccess }
func (s Snapshot) TodayPending() bool { return s.Phase == PhaseTodayPending }

// outcome is the transient result of one fetch, fed into resolve.
type outcome struct {
	sel    Selection
	digest *news.Digest
	err    error
}

// resolve is the pure transition from a completed fetch to the cycle's
// terminal snapshot. fallback is the policy-chosen cached digest: for Today
// and Latest any previously displayed digest qualifies, for Specific only the
// exact date's cache entry does.
func resolve(out outcome, fallback *news.Digest, dates []news.Date) Snapshot {
	next := Snapshot{Selection: out.sel, AvailableDates: dates}

	switch {
	case out.err == nil:
		next.Phase = PhaseSuccess
		next.Digest = out.digest

	case out.sel.Kind == KindToday && errors.Is(out.err, news.ErrNotFound):
		// Not published yet. Keep whatever we were showing; the caller gets
		// the "show latest instead" affordance rather than an error.
		next.Phase = PhaseTodayPending
		next.Digest = fallback

	case fallback != nil:
		next.Phase = PhaseStaleSuccess
		next.Digest = fallback

	default:
		next.Phase = PhaseFailed
		next.Err = news.Message(out.err)
	}

	return next
}

// loadingSnapshot is the pure transition into a cycle. shown is the digest to
// keep on screen while the fetch runs: the cached entry for today when the
// selection is Today, otherwise whatever was already displayed.
func loadingSnapshot(sel Selection, shown *news.Digest, dates []news.Date) Snapshot {
	return Snapshot{
		Phase:          PhaseLoading,
		Selection:      sel,
		Digest:         shown,
		AvailableDates: dates,
	}
}
