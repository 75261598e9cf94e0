package contact

import "regexp"

// Heurística de spam: padrões baratos que cobrem o grosso do lixo que chega
// por formulário público. Falso positivo aqui é aceitável (o usuário pode
// reformular); o objetivo é não encher a caixa do negócio.
var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(viagra|cialis|casino|lottery|winner|congratulations)\b`),
	regexp.MustCompile(`(?i)\b(click here|buy now|limited time|act now)\b`),
	// URLs muito longas embutidas no texto
	regexp.MustCompile(`(?i)https?://[^\s]{50,}`),
	// gritaria: muitas maiúsculas seguidas
	regexp.MustCompile(`[A-Z]{20,}`),
}

// IsSpam responde se o conteúdo bate em algum padrão conhecido de spam.
func IsSpam(content string) bool {
	for _, p := range spamPatterns {
		if p.MatchString(content) {
			return true
		}
	}
	// RE2 não suporta backreference, então a corrida de caracteres
	// repetidos (>= 10 iguais em sequência) é verificada na mão.
	return hasRepeatedRun(content, 10)
}

func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= n {
				return true
			}
			continue
		}
		prev = r
		run = 1
	}
	return false
}
