package engine

import "github.com/phishwise/phishwise/internal/news"

// SelectionKind says which digest the caller wants.
type SelectionKind int

const (
	KindToday SelectionKind = iota
	KindLatest
	KindSpecific
)

func (k SelectionKind) String() string {
	switch k {
	case KindToday:
		return "today"
	case KindLatest:
		return "latest"
	case KindSpecific:
		return "specific"
	default:
		return "unknown"
	}
}

// Selection is the caller's current intent. It drives the fetch order: Today
// shows a cached value optimistically while fetching, Specific is
// cache-first, Latest always goes to the network.
type Selection struct {
	Kind SelectionKind
	Date news.Date // set only for KindSpecific
}

func Today() Selection { return Selection{Kind: KindToday} }

func Latest() Selection { return Selection{Kind: KindLatest} }

func Specific(d news.Date) Selection { return Selection{Kind: KindSpecific, Date: d} }

func (s Selection) String() string {
	if s.Kind == KindSpecific {
		return "specific " + s.Date.String()
	}
	return s.Kind.String()
}
