package domain

// Camada de domínio do rate limit.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import "time"

type Key string

// Policy descreve um limite de janela fixa: no máximo Max requisições por
// Window, por chave. Message é a mensagem voltada ao usuário quando bloquear.
type Policy struct {
	Max     int
	Window  time.Duration
	Message string
}

// Políticas pré-configuradas, dirigidas por tabela (não hardcoded por rota).
var (
	// Strict protege rotas sensíveis como o envio de email.
	Strict = Policy{
		Max:     3,
		Window:  time.Hour,
		Message: "Has excedido el límite de envíos. Por favor, intenta de nuevo en una hora.",
	}

	// Moderate serve para formulários em geral.
	Moderate = Policy{
		Max:     5,
		Window:  15 * time.Minute,
		Message: "Has enviado demasiadas solicitudes. Por favor, espera unos minutos.",
	}

	// Permissive serve para consultas gerais.
	Permissive = Policy{
		Max:     100,
		Window:  time.Minute,
		Message: "Demasiadas solicitudes. Por favor, espera un momento.",
	}
)

// Policies retorna a tabela de políticas por nome.
func Policies() map[string]Policy {
	return map[string]Policy{
		"strict":     Strict,
		"moderate":   Moderate,
		"permissive": Permissive,
	}
}

// Window é o estado mutável de uma chave dentro da janela corrente.
type Window struct {
	Count   int
	ResetAt time.Time
}

// WindowStore registra um hit para a chave e devolve o estado da janela
// já incrementado. Se a chave não existe ou a janela venceu, uma janela
// nova começa em now com duração window.
//
// A implementação é dona exclusiva do estado (ninguém muta por fora) e
// protege o read-modify-write contra acesso concorrente da mesma chave.
// Limitação aproximada sob concorrência extrema é aceitável: isso é
// mitigação de abuso, não fronteira de segurança.
type WindowStore interface {
	Hit(key Key, now time.Time, window time.Duration) Window
}

// Limiter representa algo que pode decidir se uma ação é permitida agora.
//
// Usado pelo guard global de vazão; a implementação de infra usa
// golang.org/x/time/rate (token bucket).
type Limiter interface {
	Allow() bool
}

// LimiterStore obtém um limiter por chave (ex: IP).
type LimiterStore interface {
	Get(Key) Limiter
}

// Decision é o resultado de uma avaliação de rate limit.
type Decision struct {
	Allowed bool

	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	// Se 0, não há recomendação.
	RetryAfter time.Duration

	// Metadados da janela, para os headers X-RateLimit-*.
	Limit     int
	Remaining int
	ResetAt   time.Time

	// Message é a mensagem voltada ao usuário (vem da Policy).
	Message string
}
