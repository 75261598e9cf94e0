// Package application contém os casos de uso (regras de aplicação) para rate limit
// e limite de concorrência.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Decide(key) aplica uma Policy de janela fixa e retorna uma
// Decision (allow/deny, retry-after e metadados da janela).
package application
