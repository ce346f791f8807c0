package lang

import "testing"

func TestDetector_Detect(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		text string
		want string
	}{
		{"You must submit the renewal form to the city office before the end of the month.", "en"},
		{"Usted debe presentar el formulario de renovación en la oficina de la ciudad antes de fin de mes.", "es"},
		{"Vous devez soumettre le formulaire de renouvellement au bureau de la mairie avant la fin du mois.", "fr"},
	}

	for _, tt := range tests {
		got, ok := d.Detect(tt.text)
		if !ok || got != tt.want {
			t.Errorf("Expected %q for %q, got %q (%v)", tt.want, tt.text, got, ok)
		}
	}
}

func TestDetector_ShortText(t *testing.T) {
	if code, ok := NewDetector().Detect("Hi"); ok {
		t.Errorf("Expected no detection for short text, got %q", code)
	}
}

func TestIsSupported(t *testing.T) {
	for _, code := range []string{"en", "es", "fr", "de", "zh", "ar", "hi", "pt", " ES "} {
		if !IsSupported(code) {
			t.Errorf("Expected %q to be supported", code)
		}
	}
	if IsSupported("xx") || IsSupported("") {
		t.Error("Expected unknown codes to be unsupported")
	}
}
