// Package api monta a superfície HTTP do backend de contato: o
// endpoint POST /api/send-email com validação, rate limiting,
// verificação reCAPTCHA e envio de email, mais /healthz e /metrics.
package api
