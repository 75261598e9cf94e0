// Package ratelimit fornece adapters HTTP (net/http) para rate limit e limite de concorrência.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: casos de uso (janela fixa, guard de vazão, acquire/timeout) sem net/http
//   - infra: implementações concretas (janela fixa em memória, token bucket, semáforo, stats)
//   - ratelimit (este pacote): middlewares HTTP + extração de chave + tradução para status/headers
//
// Fluxo na rota do formulário de contato:
//
//   1) Extrai a chave do cliente (X-Forwarded-For / X-Real-IP / RemoteAddr)
//   2) Compõe a chave com o path (cliente:rota) e consulta a camada application
//   3) Se bloqueado, responde 429 com {error, retryAfter} e headers Retry-After / X-RateLimit-*
//   4) Se permitido, chama o próximo handler
//
// As políticas pré-configuradas (strict 3/hora, moderate 5/15min,
// permissive 100/min) vivem em domain.Policies.
package ratelimit
