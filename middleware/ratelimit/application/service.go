package application

import (
	"time"

	"lavoplus-backend/middleware/ratelimit/domain"
)

// Service aplica uma Policy de janela fixa sobre um WindowStore.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
// Now é injetável para os testes não dependerem de relógio real.
type Service struct {
	Store  domain.WindowStore
	Policy domain.Policy
	Now    func() time.Time
}

func (s Service) Decide(key domain.Key) domain.Decision {
	if s.Store == nil || s.Policy.Max <= 0 {
		return domain.Decision{Allowed: true}
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	w := s.Store.Hit(key, now, s.Policy.Window)

	if w.Count > s.Policy.Max {
		// segundos até a janela resetar, arredondando para cima
		retry := w.ResetAt.Sub(now)
		if retry < 0 {
			retry = 0
		}
		return domain.Decision{
			Allowed:    false,
			RetryAfter: ceilSeconds(retry),
			Limit:      s.Policy.Max,
			Remaining:  0,
			ResetAt:    w.ResetAt,
			Message:    s.Policy.Message,
		}
	}

	remaining := s.Policy.Max - w.Count
	if remaining < 0 {
		remaining = 0
	}
	return domain.Decision{
		Allowed:   true,
		Limit:     s.Policy.Max,
		Remaining: remaining,
		ResetAt:   w.ResetAt,
	}
}

func ceilSeconds(d time.Duration) time.Duration {
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}
	return secs * time.Second
}
