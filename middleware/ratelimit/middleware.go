package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"lavoplus-backend/middleware/ratelimit/application"
	"lavoplus-backend/middleware/ratelimit/domain"
)

type KeyFunc func(r *http.Request) string

type Options struct {
	Store  domain.WindowStore
	Policy domain.Policy
	Stats  domain.StatsStore
	KeyFn  KeyFunc

	// Now é injetável para testes; nil usa time.Now.
	Now func() time.Time
}

// DefaultKeyFunc identifica o cliente pela ordem: primeiro IP do
// X-Forwarded-For, depois X-Real-IP, depois o host do RemoteAddr.
// IPv4 mapeado em IPv6 (::ffff:a.b.c.d) é normalizado para o IPv4 puro.
func DefaultKeyFunc() KeyFunc {
	return func(r *http.Request) string {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// primeiro IP = cliente original atrás do proxy
			parts := strings.Split(xff, ",")
			if ip := strings.TrimSpace(parts[0]); ip != "" {
				return stripMappedIPv4(ip)
			}
		}

		if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
			return stripMappedIPv4(real)
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return stripMappedIPv4(host)
		}
		if r.RemoteAddr != "" {
			return stripMappedIPv4(r.RemoteAddr)
		}
		return "unknown"
	}
}

func stripMappedIPv4(ip string) string {
	if i := strings.Index(ip, "::ffff:"); i >= 0 {
		return ip[i+len("::ffff:"):]
	}
	return ip
}

// Middleware aplica a Policy de janela fixa por (cliente, rota).
//
// Quando bloqueia, responde 429 com JSON {error, retryAfter} e os headers
// Retry-After e X-RateLimit-*; quando permite, só anota os headers
// informativos e segue para o próximo handler.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc()
	}

	svc := application.Service{
		Store:  opts.Store,
		Policy: opts.Policy,
		Now:    opts.Now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := opts.KeyFn(r)
			// chave composta: mesmo cliente em rotas diferentes não compete
			key := domain.Key(client + ":" + r.URL.Path)

			dec := svc.Decide(key)
			if opts.Stats != nil {
				_ = opts.Stats.Record(r.Context(), domain.StatsEvent{
					Key:     domain.Key(client),
					Allowed: dec.Allowed,
					Method:  r.Method,
					Path:    r.URL.Path,
					At:      time.Now(),
				})
			}

			w.Header().Set("X-RateLimit-Limit", formatInt(dec.Limit))
			w.Header().Set("X-RateLimit-Remaining", formatInt(dec.Remaining))
			if !dec.ResetAt.IsZero() {
				w.Header().Set("X-RateLimit-Reset", dec.ResetAt.UTC().Format(time.RFC3339))
			}

			if !dec.Allowed {
				retrySecs := int(dec.RetryAfter.Seconds())
				w.Header().Set("Retry-After", formatInt(retrySecs))
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":      dec.Message,
					"retryAfter": retrySecs,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GuardOptions configura o guard global de vazão (token bucket por IP).
type GuardOptions struct {
	Store      domain.LimiterStore
	KeyFn      KeyFunc
	RetryAfter time.Duration
}

type rateInfo interface {
	RPS() float64
	Burst() int
}

// Guard protege o servidor inteiro contra rajadas, antes de qualquer
// política por rota. Resposta de bloqueio é texto simples 429.
func Guard(opts GuardOptions) func(next http.Handler) http.Handler {
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc()
	}
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}

	svc := application.GuardService{
		Store:      opts.Store,
		RetryAfter: opts.RetryAfter,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := domain.Key(opts.KeyFn(r))

			if ri, ok := opts.Store.(rateInfo); ok {
				w.Header().Set("X-RateLimit-RPS", formatFloat(ri.RPS()))
				w.Header().Set("X-RateLimit-Burst", formatInt(ri.Burst()))
			}

			dec := svc.Decide(key)
			if !dec.Allowed {
				w.Header().Set("Retry-After", formatInt(int(dec.RetryAfter.Seconds())))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
