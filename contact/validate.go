package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	// letras (com acentos comuns em es/pt), espaços, hífen e apóstrofo
	reNameCharset = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s'-]+$`)
	// formato permissivo: o que um humano digita num campo de telefone
	rePhoneRaw = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// Domínios descartáveis conhecidos; rejeitados para manter a caixa de
// entrada do negócio utilizável.
var disposableDomains = map[string]bool{
	"tempmail.com":      true,
	"throwaway.email":   true,
	"10minutemail.com":  true,
}

func validateName(raw string) (string, error) {
	sanitized := Sanitize(raw)

	if len([]rune(sanitized)) < nameMinLen {
		return sanitized, fmt.Errorf("El nombre debe tener al menos %d caracteres", nameMinLen)
	}
	if len([]rune(sanitized)) > nameMaxLen {
		return sanitized, fmt.Errorf("El nombre no puede exceder %d caracteres", nameMaxLen)
	}
	if !reNameCharset.MatchString(sanitized) {
		return sanitized, errors.New("El nombre contiene caracteres no válidos")
	}
	return sanitized, nil
}

func validateEmail(raw string) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(raw))

	addr, err := mail.ParseAddress(sanitized)
	if err != nil || addr.Address != sanitized {
		return sanitized, errors.New("El email no es válido")
	}
	at := strings.LastIndex(sanitized, "@")
	domain := sanitized[at+1:]
	if !strings.Contains(domain, ".") {
		return sanitized, errors.New("El email no es válido")
	}
	if len(sanitized) > emailMaxLen {
		return sanitized, fmt.Errorf("El email no puede exceder %d caracteres", emailMaxLen)
	}
	if disposableDomains[domain] {
		return sanitized, errors.New("Por favor, usa un email válido")
	}
	return sanitized, nil
}

func validatePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	// mantém apenas dígitos, preservando um + inicial
	var b strings.Builder
	for i, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	sanitized := b.String()

	if len(sanitized) < phoneMinLen {
		return sanitized, fmt.Errorf("El teléfono debe tener al menos %d dígitos", phoneMinLen)
	}
	if len(sanitized) > phoneMaxLen {
		return sanitized, fmt.Errorf("El teléfono no puede exceder %d caracteres", phoneMaxLen)
	}
	if trimmed == "" || !rePhoneRaw.MatchString(trimmed) {
		return sanitized, errors.New("El teléfono contiene caracteres no válidos")
	}
	return sanitized, nil
}

func validateService(raw string, allowed []string) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(raw))

	for _, s := range allowed {
		if strings.EqualFold(sanitized, s) {
			return sanitized, nil
		}
	}
	return sanitized, errors.New("El servicio seleccionado no es válido")
}

func validateMessage(raw string) (string, error) {
	// mensagem é opcional
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	sanitized := Sanitize(raw)
	if len([]rune(sanitized)) > messageMaxLen {
		return sanitized, fmt.Errorf("El mensaje no puede exceder %d caracteres", messageMaxLen)
	}
	return sanitized, nil
}
