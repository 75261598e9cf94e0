package application

import (
	"testing"
	"time"

	"lavoplus-backend/middleware/ratelimit/domain"
)

// fakeWindowStore devolve janelas pré-programadas, sem relógio real.
type fakeWindowStore struct {
	win domain.Window
}

func (s fakeWindowStore) Hit(domain.Key, time.Time, time.Duration) domain.Window {
	return s.win
}

var (
	base   = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	policy = domain.Policy{Max: 3, Window: time.Hour, Message: "bloqueado"}
)

func TestService_Decide_AllowsWhenNoStore(t *testing.T) {
	svc := Service{Policy: policy}
	dec := svc.Decide("k")
	if !dec.Allowed {
		t.Fatalf("expected allowed")
	}
}

func TestService_Decide_AllowsWithinLimit(t *testing.T) {
	svc := Service{
		Store:  fakeWindowStore{win: domain.Window{Count: 2, ResetAt: base.Add(time.Hour)}},
		Policy: policy,
		Now:    func() time.Time { return base },
	}

	dec := svc.Decide("k")
	if !dec.Allowed {
		t.Fatalf("expected allowed at count=2 max=3")
	}
	if dec.Limit != 3 || dec.Remaining != 1 {
		t.Fatalf("expected limit=3 remaining=1, got %d/%d", dec.Limit, dec.Remaining)
	}
}

func TestService_Decide_BlocksOverLimitWithRetryAfter(t *testing.T) {
	reset := base.Add(30 * time.Minute)
	svc := Service{
		Store:  fakeWindowStore{win: domain.Window{Count: 4, ResetAt: reset}},
		Policy: policy,
		Now:    func() time.Time { return base },
	}

	dec := svc.Decide("k")
	if dec.Allowed {
		t.Fatalf("expected blocked at count=4 max=3")
	}
	if dec.RetryAfter != 30*time.Minute {
		t.Fatalf("expected RetryAfter=30m, got %s", dec.RetryAfter)
	}
	if dec.Remaining != 0 {
		t.Fatalf("expected remaining=0, got %d", dec.Remaining)
	}
	if dec.Message != "bloqueado" {
		t.Fatalf("expected policy message, got %q", dec.Message)
	}
}

func TestService_Decide_RetryAfterRoundsUp(t *testing.T) {
	reset := base.Add(1500 * time.Millisecond)
	svc := Service{
		Store:  fakeWindowStore{win: domain.Window{Count: 4, ResetAt: reset}},
		Policy: policy,
		Now:    func() time.Time { return base },
	}

	dec := svc.Decide("k")
	if dec.RetryAfter != 2*time.Second {
		t.Fatalf("expected ceil to 2s, got %s", dec.RetryAfter)
	}
}

func TestService_Decide_ExactLimitStillAllowed(t *testing.T) {
	// count == max é a última permitida; só count > max bloqueia
	svc := Service{
		Store:  fakeWindowStore{win: domain.Window{Count: 3, ResetAt: base.Add(time.Hour)}},
		Policy: policy,
		Now:    func() time.Time { return base },
	}

	dec := svc.Decide("k")
	if !dec.Allowed {
		t.Fatalf("expected count==max to be allowed")
	}
	if dec.Remaining != 0 {
		t.Fatalf("expected remaining=0, got %d", dec.Remaining)
	}
}
