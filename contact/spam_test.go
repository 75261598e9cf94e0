package contact

import (
	"strings"
	"testing"
)

func TestIsSpam_Keywords(t *testing.T) {
	for _, s := range []string{
		"compre VIAGRA barato",
		"you are the lottery WINNER",
		"Click here para ganar",
	} {
		if !IsSpam(s) {
			t.Fatalf("expected spam for %q", s)
		}
	}
}

func TestIsSpam_LongURL(t *testing.T) {
	u := "mira esto http://example.com/" + strings.Repeat("x", 60)
	if !IsSpam(u) {
		t.Fatalf("expected long URL to be flagged")
	}
}

func TestIsSpam_RepeatedRun(t *testing.T) {
	if !IsSpam("holaaaaaaaaaaa") {
		t.Fatalf("expected >=10 repeated chars to be flagged")
	}
	if IsSpam("holaaa") {
		t.Fatalf("expected short run to pass")
	}
}

func TestIsSpam_UppercaseRun(t *testing.T) {
	if !IsSpam("ATENCION OFERTAIMPERDIBLEAHORA") {
		t.Fatalf("expected long uppercase run to be flagged")
	}
}

func TestIsSpam_NormalMessagePasses(t *testing.T) {
	if IsSpam("Hola, quisiera cotizar lavado de ropa de cama para 3 juegos.") {
		t.Fatalf("expected normal message to pass")
	}
}
