package contact

import "testing"

func validInput() Input {
	return Input{
		Name:    "Juan Pérez",
		Email:   "juan@example.com",
		Phone:   "+56 9 1234 5678",
		Service: "lavado-kilo",
		Message: "Necesito lavado para el viernes.",
	}
}

func TestValidate_HappyPath(t *testing.T) {
	sub, errs := Validate(validInput(), allowedServices)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sub.Name != "Juan Pérez" || sub.Email != "juan@example.com" {
		t.Fatalf("unexpected submission: %+v", sub)
	}
	if sub.Phone != "+56912345678" {
		t.Fatalf("expected stripped phone, got %q", sub.Phone)
	}
}

func TestValidate_MessageOptional(t *testing.T) {
	in := validInput()
	in.Message = ""

	if _, errs := Validate(in, allowedServices); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidate_CollectsAllFieldErrors(t *testing.T) {
	// não é fail-fast: todos os campos inválidos devem aparecer no mapa
	in := Input{
		Name:    "J",
		Email:   "not-an-email",
		Phone:   "123",
		Service: "lavado-premium",
	}

	_, errs := Validate(in, allowedServices)
	if errs == nil {
		t.Fatalf("expected errors")
	}
	for _, field := range []string{"name", "email", "phone", "service"} {
		if errs[field] == "" {
			t.Fatalf("expected error for field %q, got map %v", field, errs)
		}
	}
}

func TestValidate_SpamInNameRejected(t *testing.T) {
	in := validInput()
	in.Name = "Viagra Casino"

	_, errs := Validate(in, allowedServices)
	if errs == nil || errs["name"] == "" {
		t.Fatalf("expected spam rejection on name, got %v", errs)
	}
}

func TestValidate_SpamInMessageRejected(t *testing.T) {
	in := validInput()
	in.Message = "BUY NOW!!! click here http://spam"

	_, errs := Validate(in, allowedServices)
	if errs == nil || errs["message"] == "" {
		t.Fatalf("expected spam rejection on message, got %v", errs)
	}
}
