package infra

import (
	"sync"
	"time"

	"lavoplus-backend/middleware/ratelimit/domain"
)

// WindowStore é a implementação em memória de domain.WindowStore:
// janela fixa por chave, com varredura periódica para limitar memória.
//
// O estado vive só neste processo. Com múltiplas instâncias do servidor,
// cada uma aplica o limite por conta própria (aceitável para o deploy
// atual de instância única).
type WindowStore struct {
	mu         sync.Mutex
	entries    map[string]*windowEntry
	sweepEvery time.Duration
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

type WindowOption func(*WindowStore)

func WithSweepEvery(d time.Duration) WindowOption {
	return func(s *WindowStore) { s.sweepEvery = d }
}

func NewWindowStore(opts ...WindowOption) *WindowStore {
	s := &WindowStore{
		entries:    make(map[string]*windowEntry),
		sweepEvery: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hit implementa domain.WindowStore: check-and-increment sob o mesmo lock,
// para não perder updates de requisições concorrentes da mesma chave.
func (s *WindowStore) Hit(key domain.Key, now time.Time, window time.Duration) domain.Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[string(key)]
	if !ok || !now.Before(ent.resetAt) {
		// janela nova
		ent = &windowEntry{count: 0, resetAt: now.Add(window)}
		s.entries[string(key)] = ent
	}
	ent.count++

	return domain.Window{Count: ent.count, ResetAt: ent.resetAt}
}

// Sweep remove janelas vencidas.
func (s *WindowStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if !now.Before(ent.resetAt) {
			delete(s.entries, k)
		}
	}
}

// Len retorna o número de janelas vivas (inclui vencidas ainda não varridas).
func (s *WindowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor inicia uma goroutine que varre janelas vencidas periodicamente.
// Pare cancelando o contexto.
func (s *WindowStore) StartJanitor(ctx DoneContext) {
	if s.sweepEvery <= 0 {
		return
	}

	t := time.NewTicker(s.sweepEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Sweep(time.Now())
			}
		}
	}()
}

// DoneContext é o mínimo necessário para aceitar context.Context sem importar context aqui.
// (Permite reuso em libs sem acoplar.)
type DoneContext interface {
	Done() <-chan struct{}
}
