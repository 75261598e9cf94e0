// Package contact contém as regras de domínio do formulário de contato:
// sanitização de texto, validação campo a campo e heurística de spam.
//
// Este pacote não depende de net/http nem de provedores externos.
// A intenção é permitir testes de unidade puros: entra texto cru,
// sai um Submission saneado ou um mapa completo de erros por campo.
package contact
