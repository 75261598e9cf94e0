package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequirePOST rejeita qualquer método além de POST. O preflight
// OPTIONS é respondido antes, pelo CORS.
func RequirePOST(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST, OPTIONS")
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
				"error": "Método no permitido",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewRouter registra as rotas do servidor. sendEmail chega já
// embrulhado na cadeia de middlewares montada pelo main.
func NewRouter(sendEmail http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/send-email", sendEmail)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
