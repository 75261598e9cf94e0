package contact

import "regexp"

// Sanitização de texto livre: remove construções que poderiam ser
// interpretadas como markup executável se o conteúdo vazar para HTML.
//
// Observação: RE2 não tem lookahead/backreference, então os padrões são
// deliberadamente simples. Texto limpo passa inalterado (ver testes).
var (
	reScriptBlock  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	reIframeBlock  = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe\s*>`)
	reOpenTag      = regexp.MustCompile(`(?is)<(script|iframe)\b[^>]*>`)
	reJavascriptURL = regexp.MustCompile(`(?i)javascript:`)
	reEventHandler = regexp.MustCompile(`(?i)on\w+\s*=\s*("[^"]*"|'[^']*')`)
)

// Sanitize remove blocos <script>/<iframe>, URLs javascript: e atributos
// de event handler inline. Aplica repetidamente até estabilizar, para não
// deixar construções remontadas pela própria remoção (ex: "<scr<script>ipt>").
func Sanitize(input string) string {
	s := trimSpace(input)

	for {
		next := reScriptBlock.ReplaceAllString(s, "")
		next = reIframeBlock.ReplaceAllString(next, "")
		next = reOpenTag.ReplaceAllString(next, "")
		next = reJavascriptURL.ReplaceAllString(next, "")
		next = reEventHandler.ReplaceAllString(next, "")
		if next == s {
			return s
		}
		s = next
	}
}

// trimSpace local para não importar strings só por causa de TrimSpace.
func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
