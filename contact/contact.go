package contact

// Camada de domínio do formulário de contato.
//
// Regras e tipos sem dependência de net/http.

// Input é o payload cru do formulário, antes de qualquer validação.
// Todos os campos chegam como string; Message é opcional.
type Input struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
}

// Submission é o resultado saneado. Só existe quando TODOS os campos passaram.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
}

// Limites de tamanho por campo.
const (
	nameMinLen    = 2
	nameMaxLen    = 100
	emailMaxLen   = 254 // RFC 5321
	phoneMinLen   = 8
	phoneMaxLen   = 20
	messageMaxLen = 2000
)

// Validate valida e saneia o formulário inteiro.
//
// Não é fail-fast: todos os campos são verificados e o mapa de erros
// retorna o conjunto completo, para o cliente exibir tudo de uma vez.
// As mensagens são voltadas ao usuário final (site em espanhol).
func Validate(in Input, allowedServices []string) (Submission, map[string]string) {
	errs := map[string]string{}

	name, err := validateName(in.Name)
	if err != nil {
		errs["name"] = err.Error()
	}

	email, err := validateEmail(in.Email)
	if err != nil {
		errs["email"] = err.Error()
	}

	phone, err := validatePhone(in.Phone)
	if err != nil {
		errs["phone"] = err.Error()
	}

	service, err := validateService(in.Service, allowedServices)
	if err != nil {
		errs["service"] = err.Error()
	}

	message, err := validateMessage(in.Message)
	if err != nil {
		errs["message"] = err.Error()
	}

	// heurística de spam sobre os campos de texto livre
	if _, ok := errs["name"]; !ok && IsSpam(name) {
		errs["name"] = "El nombre contiene contenido no permitido"
	}
	if _, ok := errs["message"]; !ok && message != "" && IsSpam(message) {
		errs["message"] = "El mensaje contiene contenido no permitido"
	}

	if len(errs) > 0 {
		return Submission{}, errs
	}

	return Submission{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Service: service,
		Message: message,
	}, nil
}
