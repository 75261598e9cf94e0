package domain

import (
	"context"
	"time"
)

// StatsEvent representa uma decisão de rate limit que vale a pena contar:
// quem pediu, em qual rota e se passou.
//
// Observação: cuidado com cardinalidade (salvar Key/Path sem controle pode
// explodir o número de chaves numa base como Redis).
type StatsEvent struct {
	Key     Key
	Allowed bool

	Method string
	Path   string

	At time.Time
}

// StatsStore é a estratégia de registro das decisões.
//
// O middleware trata erro como best-effort: estatística nunca derruba
// uma submissão do formulário.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
