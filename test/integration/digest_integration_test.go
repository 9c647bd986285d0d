package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/phishwise/phishwise/internal/cache"
	"github.com/phishwise/phishwise/internal/config"
	"github.com/phishwise/phishwise/internal/engine"
	"github.com/phishwise/phishwise/internal/news"
)

// digestServer is a stand-in for the phishing-news API with switchable
// behavior per test scenario.
type digestServer struct {
	mu          sync.Mutex
	todayStatus int
	failAll     bool
	requests    map[string]int
}

func (s *digestServer) handler() http.Handler {
	mux := http.NewServeMux()

	writeDigest := func(w http.ResponseWriter, date news.Date) {
		digest := news.Digest{
			Date:        date,
			GeneratedAt: date.String() + "T06:00:00Z",
			Summary:     "One credential-harvesting campaign, one smishing wave.",
			Articles: []news.Article{
				{
					Title:         "Bank-themed smishing wave",
					Description:   "Texts impersonating regional banks.",
					Link:          "https://example.com/smishing-" + date.String(),
					PublishedDate: date.String() + "T05:30:00Z",
					Source:        "VendorBlog",
				},
				{
					Title:         "New credential kit in the wild",
					Description:   "Phishing kit with MFA relay support.",
					Link:          "https://example.com/kit-" + date.String(),
					PublishedDate: date.String() + "T04:00:00Z",
					Source:        "Krebs",
				},
			},
			Sources: []string{"VendorBlog", "Krebs"},
		}
		json.NewEncoder(w).Encode(digest)
	}

	mux.HandleFunc("/api/phishing-news/today", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests["today"]++
		status, fail := s.todayStatus, s.failAll
		s.mu.Unlock()

		if fail {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if status != 0 && status != http.StatusOK {
			http.Error(w, `{"detail":"digest not found"}`, status)
			return
		}
		writeDigest(w, news.Today())
	})

	mux.HandleFunc("/api/phishing-news/latest", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests["latest"]++
		fail := s.failAll
		s.mu.Unlock()

		if fail {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		writeDigest(w, "2025-01-20")
	})

	mux.HandleFunc("/api/phishing-news/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests["date"]++
		fail := s.failAll
		s.mu.Unlock()

		if fail {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		date, err := news.ParseDate(r.URL.Path[len("/api/phishing-news/"):])
		if err != nil {
			http.Error(w, `{"detail":"digest not found"}`, http.StatusNotFound)
			return
		}
		writeDigest(w, date)
	})

	mux.HandleFunc("/api/phishing-news", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests["list"]++
		fail := s.failAll
		s.mu.Unlock()

		if fail {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		list := news.DigestList{
			Count: 2,
			Digests: []news.DigestSummary{
				{Date: "2025-01-20", ArticleCount: 2, SourceCount: 2},
				{Date: news.Today(), ArticleCount: 2, SourceCount: 2},
			},
		}
		json.NewEncoder(w).Encode(list)
	})

	return mux
}

func (s *digestServer) setTodayStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todayStatus = code
}

func (s *digestServer) setFailAll(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = fail
}

func (s *digestServer) requestCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[key]
}

func setupTestEnvironment(t *testing.T) (*digestServer, *engine.Engine, *cache.Store, func()) {
	t.Helper()

	srv := &digestServer{requests: make(map[string]int)}
	ts := httptest.NewServer(srv.handler())

	cfg := config.TestConfig()
	cfg.API.BaseURL = ts.URL

	store := cache.NewStore()
	eng := engine.New(news.NewClient(cfg), store, cfg.API.ListLimit)

	return srv, eng, store, ts.Close
}

func waitForDates(t *testing.T, eng *engine.Engine, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(eng.Snapshot().AvailableDates) >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("date list never reached %d entries", n)
}

func TestIntegration_TodayRoundTrip(t *testing.T) {
	srv, eng, store, cleanup := setupTestEnvironment(t)
	defer cleanup()

	snap := <-eng.SelectToday(context.Background())

	if snap.Phase != engine.PhaseSuccess {
		t.Fatalf("Phase = %v, want success (err: %s)", snap.Phase, snap.Err)
	}
	if snap.Digest == nil || snap.Digest.Date != news.Today() {
		t.Fatalf("Digest = %+v, want today's", snap.Digest)
	}
	if !store.Has(news.Today()) {
		t.Error("today's digest should be cached after a successful fetch")
	}

	// Articles come back newest-first.
	sorted := snap.Digest.SortedArticles()
	if len(sorted) != 2 {
		t.Fatalf("got %d articles, want 2", len(sorted))
	}
	if sorted[0].Title != "Bank-themed smishing wave" {
		t.Errorf("first article = %q, want the newer one", sorted[0].Title)
	}

	// A successful cycle refreshes the date picker opportunistically.
	waitForDates(t, eng, 2)
	if srv.requestCount("list") == 0 {
		t.Error("expected a list request after the successful fetch")
	}
}

func TestIntegration_UnpublishedTodayFallsBackToLatest(t *testing.T) {
	srv, eng, _, cleanup := setupTestEnvironment(t)
	defer cleanup()
	srv.setTodayStatus(http.StatusNotFound)

	snap := <-eng.SelectToday(context.Background())
	if snap.Phase != engine.PhaseTodayPending {
		t.Fatalf("Phase = %v, want today-pending", snap.Phase)
	}
	if snap.Err != "" {
		t.Errorf("an unpublished day must not carry an error, got %q", snap.Err)
	}

	// The reader follows the hint and asks for the latest digest.
	snap = <-eng.SelectLatest(context.Background())
	if snap.Phase != engine.PhaseSuccess {
		t.Fatalf("Phase = %v, want success", snap.Phase)
	}
	if snap.Digest.Date != "2025-01-20" {
		t.Errorf("Digest.Date = %s, want the latest published day", snap.Digest.Date)
	}
}

func TestIntegration_OutageDegradesToCachedCopy(t *testing.T) {
	srv, eng, _, cleanup := setupTestEnvironment(t)
	defer cleanup()

	first := <-eng.SelectLatest(context.Background())
	if first.Phase != engine.PhaseSuccess {
		t.Fatalf("priming fetch failed: %v %s", first.Phase, first.Err)
	}

	srv.setFailAll(true)

	snap := <-eng.SelectLatest(context.Background())
	if snap.Phase != engine.PhaseStaleSuccess {
		t.Fatalf("Phase = %v, want stale success", snap.Phase)
	}
	if snap.Digest == nil || snap.Digest.Date != first.Digest.Date {
		t.Errorf("stale snapshot should carry the previously fetched digest")
	}
	if snap.Err != "" {
		t.Errorf("stale success suppresses the error, got %q", snap.Err)
	}
}

func TestIntegration_SpecificDateServedFromCache(t *testing.T) {
	srv, eng, _, cleanup := setupTestEnvironment(t)
	defer cleanup()

	date := news.Date("2025-01-18")

	snap := <-eng.SelectDate(context.Background(), date)
	if snap.Phase != engine.PhaseSuccess {
		t.Fatalf("Phase = %v, want success", snap.Phase)
	}
	networkFetches := srv.requestCount("date")

	// Even a full outage cannot break a repeat visit to a cached day.
	srv.setFailAll(true)

	snap = <-eng.SelectDate(context.Background(), date)
	if snap.Phase != engine.PhaseSuccess {
		t.Fatalf("Phase = %v, want success from cache", snap.Phase)
	}
	if got := srv.requestCount("date"); got != networkFetches {
		t.Errorf("repeat selection hit the network (%d -> %d requests)", networkFetches, got)
	}
}

func TestIntegration_ServerErrorSurfacesEnvelopeDetail(t *testing.T) {
	srv, eng, _, cleanup := setupTestEnvironment(t)
	defer cleanup()
	srv.setFailAll(true)

	snap := <-eng.SelectLatest(context.Background())
	if snap.Phase != engine.PhaseFailed {
		t.Fatalf("Phase = %v, want failed", snap.Phase)
	}
	if snap.Err != "internal error" {
		t.Errorf("Err = %q, want the server's envelope message", snap.Err)
	}
}

func TestIntegration_ConnectionRefusedIsClassified(t *testing.T) {
	cfg := config.TestConfig()
	cfg.API.BaseURL = "http://127.0.0.1:1" // nothing listens here
	client := news.NewClient(cfg)

	_, err := client.FetchLatest(context.Background())
	if err == nil {
		t.Fatal("expected a transport error")
	}
	var trErr *news.TransportError
	if !errors.As(err, &trErr) {
		t.Fatalf("error %T should be a transport error", err)
	}
	if trErr.Error() != "network problem while fetching latest digest" {
		t.Errorf("display message = %q, want the normalized form", trErr.Error())
	}
}
