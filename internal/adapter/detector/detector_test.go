package detector

import "testing"

func TestLinguaDetectorSupportedLanguages(t *testing.T) {
	d := NewLinguaDetector()

	tests := []struct {
		text string
		want string
	}{
		{"The quick brown fox jumps over the lazy dog and then walks home.", "en"},
		{"Me gustaría aprender a hablar español con fluidez algún día.", "es"},
		{"Je voudrais apprendre à parler français couramment un jour.", "fr"},
		{"Ich möchte eines Tages fließend Deutsch sprechen können.", "de"},
		{"Vorrei imparare a parlare italiano fluentemente un giorno.", "it"},
		{"Я хотел бы когда-нибудь свободно говорить по-русски.", "ru"},
	}

	for _, tt := range tests {
		got, err := d.Detect(tt.text)
		if err != nil {
			t.Errorf("Detect(%q) failed: %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
