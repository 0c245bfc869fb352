package nlp

import (
	"strings"
	"testing"
)

func newTestPreprocessor(t *testing.T) *Preprocessor {
	t.Helper()
	p, err := NewPreprocessor()
	if err != nil {
		t.Fatalf("NewPreprocessor() error = %v", err)
	}
	return p
}

func TestPreprocess(t *testing.T) {
	p := newTestPreprocessor(t)

	got := p.Preprocess("The vaccines ARE causing serious illnesses!")

	if got != strings.ToLower(got) {
		t.Errorf("Preprocess() = %q, expected all lowercase", got)
	}
	if strings.ContainsAny(got, "!.,?") {
		t.Errorf("Preprocess() = %q, expected punctuation removed", got)
	}
	for _, stop := range []string{" the ", " are "} {
		if strings.Contains(" "+got+" ", stop) {
			t.Errorf("Preprocess() = %q, stop word %q not removed", got, strings.TrimSpace(stop))
		}
	}
	if !strings.Contains(got, "vaccine") {
		t.Errorf("Preprocess() = %q, expected lemmatized token vaccine", got)
	}
}

func TestPreprocess_HyphensAndNumbers(t *testing.T) {
	p := newTestPreprocessor(t)

	got := p.Preprocess("Gluten-free diet reduces cancer risk by 90%")

	if strings.Contains(got, "-") || strings.Contains(got, "%") {
		t.Errorf("Preprocess() = %q, expected symbols removed", got)
	}
	if !strings.Contains(got, "gluten") || !strings.Contains(got, "free") {
		t.Errorf("Preprocess() = %q, hyphenated words should split into tokens", got)
	}
}

func TestPreprocess_RemovesURLsAndEmails(t *testing.T) {
	p := newTestPreprocessor(t)

	got := p.Preprocess("Visit https://scam.example.com/cure or mail quack@example.com for the miracle treatment")

	for _, leaked := range []string{"http", "scam", "quack", "example", "com"} {
		if strings.Contains(got, leaked) {
			t.Errorf("Preprocess() = %q, URL/email token %q should be removed", got, leaked)
		}
	}
	if !strings.Contains(got, "miracle") || !strings.Contains(got, "treatment") {
		t.Errorf("Preprocess() = %q, surrounding words should survive", got)
	}
}

func TestPreprocess_TruncatesLongOutput(t *testing.T) {
	p := newTestPreprocessor(t)

	long := strings.Repeat("vaccination immunology epidemiology ", 200)
	got := p.Preprocess(long)

	if len([]rune(got)) != 1000+len("...") {
		t.Errorf("Preprocess() returned %d characters, want 1000 plus ellipsis", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preprocess() = %q..., want trailing ellipsis", got[len(got)-20:])
	}
}

func TestPreprocess_Empty(t *testing.T) {
	p := newTestPreprocessor(t)

	if got := p.Preprocess(""); got != "" {
		t.Errorf("Preprocess(\"\") = %q, want empty", got)
	}
	if got := p.Preprocess("!!! ... ???"); got != "" {
		t.Errorf("Preprocess(punctuation only) = %q, want empty", got)
	}
}

func TestKeyPhrases(t *testing.T) {
	p := newTestPreprocessor(t)

	text := "Vaccine safety studies show vaccine ingredients are tested. Vaccine trials confirm safety."

	phrases := p.KeyPhrases(text, 3)

	if len(phrases) == 0 {
		t.Fatal("KeyPhrases() returned nothing")
	}
	if len(phrases) > 3 {
		t.Errorf("KeyPhrases() returned %d phrases, want at most 3", len(phrases))
	}
	if phrases[0] != "vaccine" {
		t.Errorf("KeyPhrases()[0] = %q, want most frequent token vaccine", phrases[0])
	}
}

func TestKeyPhrases_IgnoresShortTokens(t *testing.T) {
	p := newTestPreprocessor(t)

	phrases := p.KeyPhrases("flu flu flu vaccination vaccination", 5)

	for _, phrase := range phrases {
		if len(phrase) < 4 {
			t.Errorf("KeyPhrases() included short token %q", phrase)
		}
	}
}

func TestKeyPhrases_ZeroMax(t *testing.T) {
	p := newTestPreprocessor(t)

	if phrases := p.KeyPhrases("vaccine safety", 0); phrases != nil {
		t.Errorf("KeyPhrases(max=0) = %v, want nil", phrases)
	}
}
