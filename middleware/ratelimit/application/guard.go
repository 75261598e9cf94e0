package application

import (
	"time"

	"lavoplus-backend/middleware/ratelimit/domain"
)

// GuardService é a regra do guard global de vazão (token bucket por chave).
//
// Diferente do Service de janela fixa, aqui não há contagem nem reset:
// a decisão é binária e o Retry-After é uma recomendação fixa.
type GuardService struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (s GuardService) Decide(key domain.Key) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	lim := s.Store.Get(key)
	if lim == nil {
		return domain.Decision{Allowed: true}
	}
	if lim.Allow() {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: false, RetryAfter: s.RetryAfter}
}
