// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - WindowStore: janela fixa por chave em memória, com janitor de varredura
//   - BucketStore: token bucket por chave usando golang.org/x/time/rate
//   - RedisStatsStore / MemoryStatsStore: contadores de decisões
//   - ChanPool: semáforo simples para limite de concorrência
package infra
