package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAccepted         = "accepted"
	outcomeInvalidPayload   = "invalid_payload"
	outcomeValidationFailed = "validation_failed"
	outcomeRecaptchaFailed  = "recaptcha_failed"
	outcomeRateLimited      = "rate_limited"
	outcomeSendFailed       = "send_failed"
)

var submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "contact_submissions_total",
	Help: "Submissões do formulário de contato por desfecho.",
}, []string{"outcome"})

// statusRecorder captura o status escrito pelo handler interno.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ObserveRateLimited conta como rate_limited as respostas 429
// produzidas pelo middleware de limite, que roda antes do handler e
// não incrementa o contador por conta própria.
func ObserveRateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if rec.status == http.StatusTooManyRequests {
			submissionsTotal.WithLabelValues(outcomeRateLimited).Inc()
		}
	})
}
