// Package engine is the policy layer of the digest client. It resolves a
// selection intent (today, latest, a specific day) into a fresh network
// result, a cached result, an explicit not-found, or a classified failure,
// keeping the per-date cache warm along the way. State transitions are pure
// functions in state.go; this file is the concurrent driver around them.
package engine

import (
	"context"
	"sync"

	"github.com/phishwise/phishwise/internal/cache"
	"github.com/phishwise/phishwise/internal/debuglog"
	"github.com/phishwise/phishwise/internal/news"
)

// Fetcher is the transport the engine pulls digests through. *news.Client
// satisfies it; tests inject fakes.
type Fetcher interface {
	FetchToday(ctx context.Context) (*news.Digest, error)
	FetchLatest(ctx context.Context) (*news.Digest, error)
	FetchDigest(ctx context.Context, date news.Date) (*news.Digest, error)
	ListDigests(ctx context.Context, limit int) (*news.DigestList, error)
}

type Engine struct {
	fetcher   Fetcher
	cache     *cache.Store
	listLimit int

	mu   sync.Mutex
	gen  uint64
	snap Snapshot
	// lastShown is the digest most recently displayed with success, used as
	// the stale fallback for Today and Latest. It is not necessarily today's
	// digest; see DESIGN.md for why that rule is kept as-is.
	lastShown *news.Digest

	notify func(Snapshot)
}

func New(fetcher Fetcher, store *cache.Store, listLimit int) *Engine {
	return &Engine{
		fetcher:   fetcher,
		cache:     store,
		listLimit: listLimit,
		snap:      Snapshot{Phase: PhaseIdle, Selection: Today()},
	}
}

// Notify registers a push observer. fn is called outside the engine lock,
// once per observable transition, with an immutable snapshot.
func (e *Engine) Notify(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notify = fn
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap
}

// SelectToday starts a load cycle for the current UTC day. If a cached entry
// for today exists it is surfaced immediately while the fetch proceeds.
func (e *Engine) SelectToday(ctx context.Context) <-chan Snapshot {
	return e.load(ctx, Today())
}

// SelectLatest starts a load cycle for the most recently published digest.
func (e *Engine) SelectLatest(ctx context.Context) <-chan Snapshot {
	return e.load(ctx, Latest())
}

// SelectDate starts a cache-first load cycle for a specific day: a cache hit
// completes without any network call.
func (e *Engine) SelectDate(ctx context.Context, date news.Date) <-chan Snapshot {
	return e.load(ctx, Specific(date))
}

// Refresh re-runs the current selection against the network. For a Specific
// selection the cache is bypassed so a fresh copy is fetched.
func (e *Engine) Refresh(ctx context.Context) <-chan Snapshot {
	e.mu.Lock()
	sel := e.snap.Selection
	e.mu.Unlock()
	if sel.Kind == KindSpecific {
		return e.loadNetwork(ctx, sel)
	}
	return e.load(ctx, sel)
}

func (e *Engine) load(ctx context.Context, sel Selection) <-chan Snapshot {
	if sel.Kind == KindSpecific {
		if done, ok := e.tryCacheHit(sel); ok {
			return done
		}
	}
	return e.loadNetwork(ctx, sel)
}

// tryCacheHit completes a Specific selection from the cache alone.
func (e *Engine) tryCacheHit(sel Selection) (<-chan Snapshot, bool) {
	e.mu.Lock()
	digest, ok := e.cache.Get(sel.Date)
	if !ok {
		e.mu.Unlock()
		return nil, false
	}

	e.gen++
	e.snap = Snapshot{
		Phase:          PhaseSuccess,
		Selection:      sel,
		Digest:         digest,
		AvailableDates: e.snap.AvailableDates,
	}
	e.lastShown = digest
	snap := e.snap
	e.mu.Unlock()

	debuglog.Debugf("engine: %s served from cache", sel)
	e.push(snap)

	done := make(chan Snapshot, 1)
	done <- snap
	close(done)
	return done, true
}

func (e *Engine) loadNetwork(ctx context.Context, sel Selection) <-chan Snapshot {
	done := make(chan Snapshot, 1)

	e.mu.Lock()
	e.gen++
	gen := e.gen

	var shown *news.Digest
	if sel.Kind == KindToday {
		shown, _ = e.cache.Get(news.Today())
	}
	if shown == nil {
		shown = e.snap.Digest
	}
	e.snap = loadingSnapshot(sel, shown, e.snap.AvailableDates)
	snap := e.snap
	e.mu.Unlock()

	debuglog.Debugf("engine: cycle %d loading %s", gen, sel)
	e.push(snap)

	go func() {
		digest, err := e.fetch(ctx, sel)

		e.mu.Lock()
		if gen != e.gen {
			// A newer selection superseded this cycle; its result must not
			// overwrite state the winner established.
			snap := e.snap
			e.mu.Unlock()
			debuglog.Debugf("engine: cycle %d result dropped, superseded", gen)
			done <- snap
			close(done)
			return
		}

		if err == nil {
			e.cache.Put(digest)
		}
		next := resolve(outcome{sel: sel, digest: digest, err: err}, e.fallbackFor(sel), e.snap.AvailableDates)
		if next.Phase == PhaseSuccess || next.Phase == PhaseStaleSuccess {
			e.lastShown = next.Digest
		}
		e.snap = next
		snap := next
		e.mu.Unlock()

		debuglog.Debugf("engine: cycle %d -> %s", gen, snap.Phase)
		e.push(snap)
		done <- snap
		close(done)

		if err == nil {
			e.RefreshDates(ctx)
		}
	}()

	return done
}

func (e *Engine) fetch(ctx context.Context, sel Selection) (*news.Digest, error) {
	switch sel.Kind {
	case KindLatest:
		return e.fetcher.FetchLatest(ctx)
	case KindSpecific:
		return e.fetcher.FetchDigest(ctx, sel.Date)
	default:
		return e.fetcher.FetchToday(ctx)
	}
}

// fallbackFor picks the cached digest a failed cycle may degrade to. Specific
// dates only ever fall back to their own cache entry; Today and Latest fall
// back to today's cached digest or, failing that, the last digest shown.
func (e *Engine) fallbackFor(sel Selection) *news.Digest {
	if sel.Kind == KindSpecific {
		d, _ := e.cache.Get(sel.Date)
		return d
	}
	if d, ok := e.cache.Get(news.Today()); ok {
		return d
	}
	return e.lastShown
}

// RefreshDates fetches the set of known digest dates for the picker. It runs
// opportunistically: it never gates a load cycle, and failures are absorbed,
// leaving the picker as it was.
func (e *Engine) RefreshDates(ctx context.Context) {
	go func() {
		list, err := e.fetcher.ListDigests(ctx, e.listLimit)
		if err != nil {
			debuglog.Warnf("engine: date list refresh failed: %v", err)
			return
		}

		e.mu.Lock()
		e.snap.AvailableDates = list.Dates()
		snap := e.snap
		e.mu.Unlock()

		e.push(snap)
	}()
}

func (e *Engine) push(snap Snapshot) {
	e.mu.Lock()
	fn := e.notify
	e.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
