package aggregate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/FuturesLab/futureslab.github.io/internal/config"
	"github.com/FuturesLab/futureslab.github.io/internal/domain"
	"github.com/rs/zerolog"
)

type stubFetcher struct {
	mu    sync.Mutex
	docs  map[string][]domain.BugRecord
	errs  map[string]error
	delay map[string]time.Duration
	calls map[string]int
}

func (s *stubFetcher) Fetch(ctx context.Context, name string) ([]domain.BugRecord, error) {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[name]++
	s.mu.Unlock()
	if d := s.delay[name]; d > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d):
		}
	}
	if err := s.errs[name]; err != nil {
		return nil, err
	}
	return s.docs[name], nil
}

func rec(id, date string) domain.BugRecord {
	return domain.BugRecord{Date: date, Type: "logic", ID: id, URL: "http://x", Desc: "d", Lead: "L"}
}

func newAgg(sources []string, f *stubFetcher, ttl time.Duration) *Aggregator {
	cfg := config.Config{BugsSources: sources, FetchTimeout: 2 * time.Second, MaxConcurrency: 4, CacheTTL: ttl}
	return New(cfg, zerolog.Nop(), f)
}

func TestMergePreservesDeclaredOrder(t *testing.T) {
	// first source resolves last; merge order must not care
	f := &stubFetcher{
		docs: map[string][]domain.BugRecord{
			"a.json": {rec("A1", "2024-01-01"), rec("A2", "2024-01-02")},
			"b.json": {rec("B1", "2023-05-05")},
		},
		delay: map[string]time.Duration{"a.json": 50 * time.Millisecond},
	}
	rep, err := newAgg([]string{"a.json", "b.json"}, f, 0).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count() != 3 {
		t.Fatalf("count = %d", rep.Count())
	}
	want := []string{"A1", "A2", "B1"}
	for i, w := range want {
		if rep.Records[i].ID != w {
			t.Fatalf("position %d: got %s want %s", i, rep.Records[i].ID, w)
		}
	}
}

func TestAnyFailureFailsTheWholeLoad(t *testing.T) {
	f := &stubFetcher{
		docs: map[string][]domain.BugRecord{"a.json": {rec("A1", "2024-01-01")}},
		errs: map[string]error{"b.json": errors.New("boom")},
	}
	if _, err := newAgg([]string{"a.json", "b.json"}, f, 0).Fetch(context.Background()); err == nil {
		t.Fatal("expected failure, got partial success")
	}
}

func TestInvalidRecordsAreSkipped(t *testing.T) {
	f := &stubFetcher{
		docs: map[string][]domain.BugRecord{
			"a.json": {
				rec("A1", "2024-01-01"),
				{Date: "not a date", ID: "A2", URL: "http://x"},
				{Date: "2024-01-03", ID: "", URL: "http://x"},
			},
		},
	}
	rep, err := newAgg([]string{"a.json"}, f, 0).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count() != 1 {
		t.Fatalf("expected invalid records skipped, count = %d", rep.Count())
	}
	if rep.Sources[0].Skipped != 2 || rep.Sources[0].Records != 1 {
		t.Fatalf("bad source counts: %+v", rep.Sources[0])
	}
}

func TestCountEqualsSumOfSources(t *testing.T) {
	f := &stubFetcher{
		docs: map[string][]domain.BugRecord{
			"a.json": {rec("A1", "2024-01-01"), rec("A2", "2024-01-02")},
			"b.json": {rec("B1", "2023-05-05")},
			"c.json": {},
		},
	}
	rep, err := newAgg([]string{"a.json", "b.json", "c.json"}, f, 0).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	sum := 0
	for _, sc := range rep.Sources {
		sum += sc.Records
	}
	if rep.Count() != sum || sum != 3 {
		t.Fatalf("count %d != source sum %d", rep.Count(), sum)
	}
}

func TestNoSources(t *testing.T) {
	if _, err := newAgg(nil, &stubFetcher{}, 0).Fetch(context.Background()); !errors.Is(err, ErrNoSources) {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}
}

func TestTimeoutSurfacesAsFailure(t *testing.T) {
	f := &stubFetcher{
		docs:  map[string][]domain.BugRecord{"slow.json": {rec("A1", "2024-01-01")}},
		delay: map[string]time.Duration{"slow.json": 500 * time.Millisecond},
	}
	cfg := config.Config{BugsSources: []string{"slow.json"}, FetchTimeout: 30 * time.Millisecond}
	if _, err := New(cfg, zerolog.Nop(), f).Fetch(context.Background()); err == nil {
		t.Fatal("expected timeout failure")
	}
}

func TestSnapshotReusedWithinTTL(t *testing.T) {
	f := &stubFetcher{docs: map[string][]domain.BugRecord{"a.json": {rec("A1", "2024-01-01")}}}
	agg := newAgg([]string{"a.json"}, f, time.Minute)
	for i := 0; i < 3; i++ {
		if _, err := agg.Fetch(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if f.calls["a.json"] != 1 {
		t.Fatalf("expected 1 upstream fetch, got %d", f.calls["a.json"])
	}
}

func TestNoCacheByDefault(t *testing.T) {
	f := &stubFetcher{docs: map[string][]domain.BugRecord{"a.json": {rec("A1", "2024-01-01")}}}
	agg := newAgg([]string{"a.json"}, f, 0)
	for i := 0; i < 2; i++ {
		if _, err := agg.Fetch(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if f.calls["a.json"] != 2 {
		t.Fatalf("cache disabled should fetch per load, got %d", f.calls["a.json"])
	}
}
