package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty string", "", ""},
		{"Spaces only", "   ", ""},
		{"Already normalized", "cotizacion", "cotizacion"},
		{"Uppercase with accent", "COTIZACIÓN", "cotizacion"},
		{"Mixed case with accent", "Cotización", "cotizacion"},
		{"Phrase with accents", "Solicitud Cotización", "solicitud cotizacion"},
		{"PostVenta option", "Servicio PostVenta", "servicio postventa"},
		{"Tilde n", "Señor Muñoz", "senor munoz"},
		{"Surrounding whitespace", "  Teléfono  ", "telefono"},
		{"Diaeresis", "pingüino", "pinguino"},
		{"Unaccented text untouched", "numero de parte", "numero de parte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Cotización",
		"SERVICIO POSTVENTA",
		"  Número de Parte o Descripción  ",
		"ya normalizado",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
