package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"lavoplus-backend/contact"
	"lavoplus-backend/mailer"
	"lavoplus-backend/recaptcha"
)

const (
	// expectedAction deve bater com a ação declarada pelo frontend ao
	// gerar o token.
	expectedAction = "contact_form"

	// maxBodyBytes limita o corpo da requisição. O formulário inteiro
	// cabe em poucos KB; o resto é abuso.
	maxBodyBytes = 64 << 10
)

// AllowedServices são os códigos aceitos no campo service. Deve
// coincidir com as opções do frontend.
var AllowedServices = []string{
	"lavado-kilo",
	"lavado-seco",
	"planchado",
	"ropa-cama",
	"express",
	"otro",
}

// Verifier é o que o handler precisa do reCAPTCHA. Satisfeito por
// *recaptcha.Verifier e pelos fakes dos testes.
type Verifier interface {
	Verify(ctx context.Context, token, expectedAction string) recaptcha.Result
}

// Handler atende POST /api/send-email.
type Handler struct {
	verifier Verifier
	mail     mailer.Mailer
	logger   *slog.Logger
	allowed  []string
}

func NewHandler(verifier Verifier, mail mailer.Mailer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		verifier: verifier,
		mail:     mail,
		logger:   logger,
		allowed:  AllowedServices,
	}
}

type sendEmailRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Service        string `json:"service"`
	Message        string `json:"message"`
	RecaptchaToken string `json:"recaptchaToken"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", RequestIDFrom(r.Context()))

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		submissionsTotal.WithLabelValues(outcomeInvalidPayload).Inc()
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Datos del formulario no válidos",
		})
		return
	}

	sub, fieldErrs := contact.Validate(contact.Input{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	}, h.allowed)
	if len(fieldErrs) > 0 {
		submissionsTotal.WithLabelValues(outcomeValidationFailed).Inc()
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Error de validación",
			"errors": fieldErrs,
		})
		return
	}

	res := h.verifier.Verify(r.Context(), req.RecaptchaToken, expectedAction)
	if !res.Success {
		submissionsTotal.WithLabelValues(outcomeRecaptchaFailed).Inc()
		logger.Warn("verificação recaptcha reprovada", "reason", res.Reason, "score", res.Score)
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error": "Verificación de seguridad fallida. Por favor, intenta de nuevo.",
		})
		return
	}
	logger.Info("verificação recaptcha aprovada", "score", res.Score)

	id, err := h.mail.Send(r.Context(), sub)
	if err != nil {
		submissionsTotal.WithLabelValues(outcomeSendFailed).Inc()
		logger.Error("falha enviando email de contato", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Error al enviar el correo",
		})
		return
	}

	submissionsTotal.WithLabelValues(outcomeAccepted).Inc()
	logger.Info("submissão de contato aceita", "service", sub.Service, "mail_id", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Correo enviado exitosamente",
		"data":    map[string]string{"id": id},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
