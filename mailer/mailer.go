package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/resend/resend-go/v2"

	"lavoplus-backend/contact"
)

const (
	defaultFrom = "onboarding@resend.dev"
	defaultTo   = "info@lavoplus.cl"
)

// Mailer envia uma submissão validada e retorna o id da mensagem no
// provedor.
type Mailer interface {
	Send(ctx context.Context, sub contact.Submission) (string, error)
}

// ResendMailer implementa Mailer sobre a API do Resend.
type ResendMailer struct {
	client *resend.Client
	from   string
	to     string
	logger *slog.Logger
}

type ResendOption func(*ResendMailer)

// WithFrom troca o remetente padrão.
func WithFrom(from string) ResendOption {
	return func(m *ResendMailer) {
		if from != "" {
			m.from = from
		}
	}
}

// WithTo troca o destinatário padrão.
func WithTo(to string) ResendOption {
	return func(m *ResendMailer) {
		if to != "" {
			m.to = to
		}
	}
}

// WithMailerBaseURL aponta o cliente para outro endpoint. Usado nos
// testes para falar com um servidor local.
func WithMailerBaseURL(u *url.URL) ResendOption {
	return func(m *ResendMailer) { m.client.BaseURL = u }
}

// WithMailerLogger troca o logger padrão.
func WithMailerLogger(l *slog.Logger) ResendOption {
	return func(m *ResendMailer) { m.logger = l }
}

// NewResend cria o mailer com os padrões do negócio.
func NewResend(apiKey string, opts ...ResendOption) *ResendMailer {
	m := &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   defaultFrom,
		to:     defaultTo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send renderiza o corpo e dispara o email para o negócio.
func (m *ResendMailer) Send(ctx context.Context, sub contact.Submission) (string, error) {
	html, err := renderEmail(sub)
	if err != nil {
		return "", fmt.Errorf("renderizando email: %w", err)
	}

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		Subject: fmt.Sprintf("Nuevo contacto de %s - %s", sub.Name, ServiceLabel(sub.Service)),
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("enviando email: %w", err)
	}

	m.logger.Info("email de contato enviado", "id", sent.Id, "service", sub.Service)
	return sent.Id, nil
}
