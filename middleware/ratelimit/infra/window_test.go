package infra

import (
	"sync"
	"testing"
	"time"

	"lavoplus-backend/middleware/ratelimit/domain"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestWindowStore_FirstHitStartsFreshWindow(t *testing.T) {
	s := NewWindowStore()

	w := s.Hit(domain.Key("k"), t0, time.Hour)
	if w.Count != 1 {
		t.Fatalf("expected count=1, got %d", w.Count)
	}
	if !w.ResetAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("expected reset at now+window, got %s", w.ResetAt)
	}
}

func TestWindowStore_IncrementsWithinWindow(t *testing.T) {
	s := NewWindowStore()

	s.Hit(domain.Key("k"), t0, time.Hour)
	s.Hit(domain.Key("k"), t0.Add(time.Minute), time.Hour)
	w := s.Hit(domain.Key("k"), t0.Add(2*time.Minute), time.Hour)

	if w.Count != 3 {
		t.Fatalf("expected count=3, got %d", w.Count)
	}
	if !w.ResetAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("expected original reset preserved, got %s", w.ResetAt)
	}
}

func TestWindowStore_ExpiredWindowRestarts(t *testing.T) {
	s := NewWindowStore()

	s.Hit(domain.Key("k"), t0, time.Hour)
	s.Hit(domain.Key("k"), t0, time.Hour)

	// depois do reset, janela recomeça do zero
	later := t0.Add(time.Hour)
	w := s.Hit(domain.Key("k"), later, time.Hour)
	if w.Count != 1 {
		t.Fatalf("expected fresh window count=1, got %d", w.Count)
	}
	if !w.ResetAt.Equal(later.Add(time.Hour)) {
		t.Fatalf("expected new reset, got %s", w.ResetAt)
	}
}

func TestWindowStore_KeysAreIndependent(t *testing.T) {
	s := NewWindowStore()

	s.Hit(domain.Key("a:/api/send-email"), t0, time.Hour)
	w := s.Hit(domain.Key("b:/api/send-email"), t0, time.Hour)
	if w.Count != 1 {
		t.Fatalf("expected independent key, got count=%d", w.Count)
	}
}

func TestWindowStore_SweepPurgesExpired(t *testing.T) {
	s := NewWindowStore()

	s.Hit(domain.Key("old"), t0, time.Minute)
	s.Hit(domain.Key("new"), t0, time.Hour)

	s.Sweep(t0.Add(5 * time.Minute))
	if got := s.Len(); got != 1 {
		t.Fatalf("expected 1 live window after sweep, got %d", got)
	}
}

func TestWindowStore_ConcurrentHitsDoNotLoseUpdates(t *testing.T) {
	s := NewWindowStore()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.Hit(domain.Key("k"), t0, time.Hour)
		}()
	}
	wg.Wait()

	w := s.Hit(domain.Key("k"), t0, time.Hour)
	if w.Count != n+1 {
		t.Fatalf("expected count=%d, got %d", n+1, w.Count)
	}
}
