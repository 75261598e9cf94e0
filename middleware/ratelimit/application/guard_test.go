package application

import (
	"testing"
	"time"

	"lavoplus-backend/middleware/ratelimit/domain"
)

type fakeLimiter struct {
	allow bool
}

func (f fakeLimiter) Allow() bool { return f.allow }

type fakeLimiterStore struct {
	lim domain.Limiter
}

func (s fakeLimiterStore) Get(domain.Key) domain.Limiter { return s.lim }

func TestGuardService_AllowsWhenNoStore(t *testing.T) {
	svc := GuardService{}
	if dec := svc.Decide("k"); !dec.Allowed {
		t.Fatalf("expected allowed")
	}
}

func TestGuardService_AllowsWhenLimiterAllows(t *testing.T) {
	svc := GuardService{Store: fakeLimiterStore{lim: fakeLimiter{allow: true}}, RetryAfter: 5 * time.Second}
	if dec := svc.Decide("k"); !dec.Allowed {
		t.Fatalf("expected allowed")
	}
}

func TestGuardService_BlocksWithRetryAfterDefault(t *testing.T) {
	svc := GuardService{Store: fakeLimiterStore{lim: fakeLimiter{allow: false}}}
	dec := svc.Decide("k")
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.RetryAfter != 1*time.Second {
		t.Fatalf("expected default RetryAfter=1s, got %s", dec.RetryAfter)
	}
}

func TestGuardService_BlocksWithConfiguredRetryAfter(t *testing.T) {
	svc := GuardService{Store: fakeLimiterStore{lim: fakeLimiter{allow: false}}, RetryAfter: 2500 * time.Millisecond}
	dec := svc.Decide("k")
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.RetryAfter != 2500*time.Millisecond {
		t.Fatalf("expected RetryAfter=2.5s, got %s", dec.RetryAfter)
	}
}
