package recaptcha

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// endpoint fixo de troca de token do Google OAuth2
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	oauthScope      = "https://www.googleapis.com/auth/cloud-platform"
	jwtBearerGrant  = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// a assertion vale 1 hora; o cache desconta 1 minuto da expiração
	// reportada para cobrir clock skew e latência
	assertionTTL = time.Hour
	expiryMargin = time.Minute
)

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// TokenSource produz access tokens para a API do reCAPTCHA Enterprise a
// partir de uma conta de serviço, amortizando o custo da troca com um
// cache de slot único.
//
// Token devolve "" quando não há credencial disponível (conta de serviço
// não configurada, chave inválida, endpoint fora do ar). O chamador deve
// cair para o header de API key nesse caso.
type TokenSource struct {
	email    string
	key      *rsa.PrivateKey
	tokenURL string
	client   *http.Client
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	cached cachedToken
}

type TokenOption func(*TokenSource)

func WithTokenURL(u string) TokenOption {
	return func(ts *TokenSource) { ts.tokenURL = u }
}

func WithTokenHTTPClient(c *http.Client) TokenOption {
	return func(ts *TokenSource) { ts.client = c }
}

func WithTokenNow(now func() time.Time) TokenOption {
	return func(ts *TokenSource) { ts.now = now }
}

func WithTokenLogger(l *slog.Logger) TokenOption {
	return func(ts *TokenSource) { ts.logger = l }
}

// NewTokenSource monta um TokenSource a partir do email da conta de
// serviço e da chave privada em PEM. Chaves vindas de variável de
// ambiente costumam ter os "\n" escapados; isso é normalizado aqui.
//
// Se email ou chave estiverem ausentes/inválidos, o TokenSource ainda é
// criado, mas Token sempre devolve "" (fallback para API key).
func NewTokenSource(email, privateKeyPEM string, opts ...TokenOption) *TokenSource {
	ts := &TokenSource{
		email:    strings.TrimSpace(email),
		tokenURL: defaultTokenURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}

	if privateKeyPEM != "" {
		pem := strings.ReplaceAll(privateKeyPEM, `\n`, "\n")
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pem))
		if err != nil {
			ts.logger.Warn("recaptcha: chave privada da conta de serviço inválida", "error", err)
		} else {
			ts.key = key
		}
	}

	return ts
}

// Token devolve um access token válido, reutilizando o cache quando
// possível. Nunca retorna error: qualquer falha vira "" e fica no log.
func (ts *TokenSource) Token(ctx context.Context) string {
	if ts == nil || ts.email == "" || ts.key == nil {
		return ""
	}

	now := ts.now()

	ts.mu.Lock()
	if ts.cached.token != "" && now.Before(ts.cached.expiresAt) {
		tok := ts.cached.token
		ts.mu.Unlock()
		return tok
	}
	ts.mu.Unlock()

	// troca fora do lock: duas trocas em voo são toleráveis,
	// o último escritor vence
	tok, expiresIn, err := ts.exchange(ctx, now)
	if err != nil {
		ts.logger.Warn("recaptcha: falha na troca de credencial", "error", err)
		return ""
	}

	ts.mu.Lock()
	ts.cached = cachedToken{
		token:     tok,
		expiresAt: now.Add(expiresIn - expiryMargin),
	}
	ts.mu.Unlock()

	return tok
}

func (ts *TokenSource) exchange(ctx context.Context, now time.Time) (string, time.Duration, error) {
	assertion, err := ts.assertion(now)
	if err != nil {
		return "", 0, err
	}

	form := url.Values{
		"grant_type": {jwtBearerGrant},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, &exchangeError{status: resp.StatusCode}
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", 0, err
	}
	if body.AccessToken == "" {
		return "", 0, &exchangeError{status: resp.StatusCode}
	}

	expiresIn := time.Duration(body.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = assertionTTL
	}
	return body.AccessToken, expiresIn, nil
}

// assertion monta e assina o JWT RS256 trocado pelo access token.
func (ts *TokenSource) assertion(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   ts.email,
		"scope": oauthScope,
		"aud":   ts.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ts.key)
}

type exchangeError struct {
	status int
}

func (e *exchangeError) Error() string {
	return "token endpoint returned status " + strconv.Itoa(e.status)
}
