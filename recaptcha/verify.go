package recaptcha

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultAPIBase = "https://recaptchaenterprise.googleapis.com"

	// score mínimo para aceitar a submissão
	scoreThreshold = 0.5
)

// Motivos possíveis em Result.Reason.
const (
	ReasonNotConfigured  = "not_configured"
	ReasonNoToken        = "no_token"
	ReasonRequestError   = "request_error"
	ReasonAPIError       = "api_error"
	ReasonBadResponse    = "bad_response"
	ReasonInvalidToken   = "invalid_token"
	ReasonActionMismatch = "action_mismatch"
	ReasonLowScore       = "low_score"
	ReasonOK             = "ok"
)

// Result é o veredito de uma verificação. Transiente: calculado por
// requisição, nunca armazenado.
type Result struct {
	Success bool
	Score   float64
	Reason  string
}

// Config traz os identificadores do projeto reCAPTCHA Enterprise.
// ProjectID/SiteKey vazios significam serviço não configurado: a
// verificação é pulada e tratada como sucesso (escape explícito para
// ambientes de desenvolvimento, fica registrado no log).
type Config struct {
	ProjectID string
	SiteKey   string
	// APIKey é o fallback de autenticação quando não há access token
	// de conta de serviço.
	APIKey string
}

// Verifier chama a API de assessments.
type Verifier struct {
	cfg     Config
	tokens  *TokenSource
	client  *http.Client
	logger  *slog.Logger
	apiBase string
}

type VerifierOption func(*Verifier)

func WithAPIBase(base string) VerifierOption {
	return func(v *Verifier) { v.apiBase = base }
}

func WithHTTPClient(c *http.Client) VerifierOption {
	return func(v *Verifier) { v.client = c }
}

func WithLogger(l *slog.Logger) VerifierOption {
	return func(v *Verifier) { v.logger = l }
}

// NewVerifier cria o verificador. tokens pode ser nil quando não há
// conta de serviço; nesse caso só o header de API key é usado.
func NewVerifier(cfg Config, tokens *TokenSource, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		cfg:     cfg,
		tokens:  tokens,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
		apiBase: defaultAPIBase,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type assessmentRequest struct {
	Event assessmentEvent `json:"event"`
}

type assessmentEvent struct {
	Token          string `json:"token"`
	ExpectedAction string `json:"expectedAction"`
	SiteKey        string `json:"siteKey"`
}

type assessmentResponse struct {
	TokenProperties struct {
		Valid  bool   `json:"valid"`
		Action string `json:"action"`
	} `json:"tokenProperties"`
	RiskAnalysis struct {
		Score   float64  `json:"score"`
		Reasons []string `json:"reasons"`
	} `json:"riskAnalysis"`
}

// Verify avalia o token do cliente contra a ação esperada.
//
// Nunca retorna error nem propaga panic: qualquer falha vira um Result
// com Success=false e um Reason específico.
func (v *Verifier) Verify(ctx context.Context, token, expectedAction string) Result {
	if v.cfg.ProjectID == "" || v.cfg.SiteKey == "" {
		v.logger.Warn("recaptcha: não configurado, verificação pulada")
		return Result{Success: true, Score: 1.0, Reason: ReasonNotConfigured}
	}

	if token == "" {
		return Result{Success: false, Score: 0, Reason: ReasonNoToken}
	}

	payload, err := json.Marshal(assessmentRequest{
		Event: assessmentEvent{
			Token:          token,
			ExpectedAction: expectedAction,
			SiteKey:        v.cfg.SiteKey,
		},
	})
	if err != nil {
		return Result{Success: false, Score: 0, Reason: ReasonRequestError}
	}

	endpoint := v.apiBase + "/v1/projects/" + v.cfg.ProjectID + "/assessments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Score: 0, Reason: ReasonRequestError}
	}
	req.Header.Set("Content-Type", "application/json")

	// bearer da conta de serviço quando disponível; senão API key
	if bearer := v.tokens.Token(ctx); bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("x-goog-api-key", v.cfg.APIKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("recaptcha: falha chamando assessments", "error", err)
		return Result{Success: false, Score: 0, Reason: ReasonRequestError}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		v.logger.Warn("recaptcha: assessments retornou erro", "status", resp.StatusCode)
		return Result{Success: false, Score: 0, Reason: ReasonAPIError}
	}

	var body assessmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{Success: false, Score: 0, Reason: ReasonBadResponse}
	}

	score := body.RiskAnalysis.Score
	switch {
	case !body.TokenProperties.Valid:
		return Result{Success: false, Score: score, Reason: ReasonInvalidToken}
	case body.TokenProperties.Action != expectedAction:
		return Result{Success: false, Score: score, Reason: ReasonActionMismatch}
	case score < scoreThreshold:
		return Result{Success: false, Score: score, Reason: ReasonLowScore}
	}

	return Result{Success: true, Score: score, Reason: ReasonOK}
}
