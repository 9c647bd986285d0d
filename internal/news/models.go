package news

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Date is a calendar day in UTC, formatted as YYYY-MM-DD. It is the unit of
// digest granularity and the cache key. Always normalize through DateOf or
// ParseDate so a client in another timezone agrees with the server on "today".
type Date string

const dateLayout = "2006-01-02"

// Today returns the current UTC calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// DateOf normalizes an instant to its UTC calendar day.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(dateLayout))
}

// ParseDate validates a YYYY-MM-DD string and returns it as a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid digest date %q (want YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string { return string(d) }

// Time returns the start of the day in UTC.
func (d Date) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}

// Digest is one day's published content. Immutable once decoded; a later fetch
// for the same date replaces the whole value rather than mutating it.
type Digest struct {
	Date        Date      `json:"date"`
	GeneratedAt string    `json:"generated_at"`
	Summary     string    `json:"summary"`
	Articles    []Article `json:"articles"`
	Sources     []string  `json:"sources"`
}

// SortedArticles returns the articles newest-first by parsed published date.
// Articles whose published_date does not parse sort last, in input order.
func (d *Digest) SortedArticles() []Article {
	out := make([]Article, len(d.Articles))
	copy(out, d.Articles)
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := out[i].PublishedAt()
		tj, okj := out[j].PublishedAt()
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return ti.After(tj)
	})
	return out
}

// SourceNames returns the distinct article sources, sorted.
func (d *Digest) SourceNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range d.Articles {
		if a.Source == "" || seen[a.Source] {
			continue
		}
		seen[a.Source] = true
		names = append(names, a.Source)
	}
	sort.Strings(names)
	return names
}

// Article is a single news item within a digest. The link is the only field
// the API guarantees unique and stable, so it serves as the identity.
type Article struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	PublishedDate string `json:"published_date"`
	Source        string `json:"source"`
}

// ID returns the article identity for list purposes.
func (a Article) ID() string { return a.Link }

// PublishedAt parses the ISO-8601 published_date. The API emits timestamps
// both with and without fractional seconds, and some upstream feeds produce
// malformed fractional variants; those are handled by stripping the fraction
// before giving up. ok is false when nothing parses.
func (a Article) PublishedAt() (time.Time, bool) {
	return parsePublished(a.PublishedDate)
}

// FormattedDate renders the published date for display, falling back to the
// raw wire text when it cannot be parsed. A bad timestamp never fails the
// article, let alone the digest.
func (a Article) FormattedDate() string {
	t, ok := a.PublishedAt()
	if !ok {
		return a.PublishedDate
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

func parsePublished(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// RFC3339Nano accepts both fractional and whole-second timestamps.
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	// Malformed fractional seconds: drop the fraction and retry.
	if dot := strings.IndexByte(s, '.'); dot != -1 {
		rest := s[dot+1:]
		end := 0
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
		if t, err := time.Parse(time.RFC3339, s[:dot]+rest[end:]); err == nil {
			return t, true
		}
	}
	// Zone-less timestamps are treated as UTC.
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// DigestSummary is a lightweight listing entry used to populate the date
// picker. It is never merged into a full Digest.
type DigestSummary struct {
	Date         Date   `json:"date"`
	GeneratedAt  string `json:"generated_at"`
	ArticleCount int    `json:"article_count"`
	SourceCount  int    `json:"source_count"`
}

// DigestList is the response of the listing endpoint.
type DigestList struct {
	Count   int             `json:"count"`
	Digests []DigestSummary `json:"digests"`
}

// Dates returns the listed digest dates, newest first.
func (l *DigestList) Dates() []Date {
	dates := make([]Date, 0, len(l.Digests))
	for _, d := range l.Digests {
		dates = append(dates, d.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] > dates[j] })
	return dates
}
