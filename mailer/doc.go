// Package mailer entrega as submissões do formulário de contato por
// email, via Resend. O conteúdo é um HTML em espanhol montado por
// template, com os campos já validados e sanitizados.
package mailer
