// Package recaptcha verifica tokens do reCAPTCHA Enterprise no backend.
//
// Duas peças:
//
//   - TokenSource: troca uma assertion JWT (conta de serviço) por um access
//     token OAuth2 e o mantém em cache até perto de expirar.
//   - Verifier: chama a API de assessments com o token vindo do navegador e
//     devolve um Result (aceito/recusado + score).
//
// Falha de rede, resposta malformada ou configuração ausente nunca viram
// panic nem error para o chamador: tudo é mapeado para um Result tipado,
// porque a verificação não pode derrubar o handler de submissão.
package recaptcha
