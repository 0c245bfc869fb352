package textproc

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

type stubDetector struct {
	code string
	err  error
}

func (s *stubDetector) Detect(_ string) (string, error) {
	return s.code, s.err
}

type stubTranslator struct {
	out    string
	err    error
	called bool
}

func (s *stubTranslator) Translate(_ context.Context, _, _, _ string) (string, error) {
	s.called = true
	return s.out, s.err
}

type stubPreprocessor struct{}

func (stubPreprocessor) Preprocess(text string) string {
	return strings.ToLower(text)
}

func (stubPreprocessor) KeyPhrases(_ string, max int) []string {
	return []string{"vaccine", "immunity"}[:min(2, max)]
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/article", true},
		{"http://example.com", true},
		{"  https://example.com  ", true},
		{"vitamin c cures colds", false},
		{"ftp://example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "vitamin c cures colds", "vitamin c cures colds"},
		{"strips tags", "<script>alert(1)</script>hello", "hello"},
		{"strips markup keeps text", "<b>bold</b> claim", "bold claim"},
		{"trims whitespace", "  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeInput(tt.input); got != tt.want {
				t.Errorf("SanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeInput_CapsLength(t *testing.T) {
	got := SanitizeInput(strings.Repeat("a", 6000))
	if len([]rune(got)) != 5000 {
		t.Errorf("len(SanitizeInput(6000 chars)) = %d, want 5000", len([]rune(got)))
	}

	short := "vitamin c cures colds"
	if SanitizeInput(short) != short {
		t.Error("inputs under the cap must pass through unchanged")
	}
}

func TestDetectLanguage_DefaultsToEnglishOnError(t *testing.T) {
	svc := NewService(nil, &stubDetector{code: "en", err: errors.New("ambiguous")}, nil, stubPreprocessor{})

	if got := svc.DetectLanguage("???"); got != "en" {
		t.Errorf("DetectLanguage = %q, want en", got)
	}
}

func TestDetectLanguage_ReturnsDetectedCode(t *testing.T) {
	svc := NewService(nil, &stubDetector{code: "es"}, nil, stubPreprocessor{})

	if got := svc.DetectLanguage("la vacuna es segura"); got != "es" {
		t.Errorf("DetectLanguage = %q, want es", got)
	}
}

func TestTranslateToEnglish(t *testing.T) {
	t.Run("skips english input", func(t *testing.T) {
		tr := &stubTranslator{out: "unused"}
		svc := NewService(nil, nil, tr, stubPreprocessor{})

		got := svc.TranslateToEnglish(context.Background(), "already english", "en")
		if got != "already english" {
			t.Errorf("got %q", got)
		}
		if tr.called {
			t.Error("translator should not be called for english input")
		}
	})

	t.Run("translates foreign input", func(t *testing.T) {
		tr := &stubTranslator{out: "the vaccine is safe"}
		svc := NewService(nil, nil, tr, stubPreprocessor{})

		got := svc.TranslateToEnglish(context.Background(), "la vacuna es segura", "es")
		if got != "the vaccine is safe" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("falls back to original on error", func(t *testing.T) {
		tr := &stubTranslator{err: errors.New("quota exceeded")}
		svc := NewService(nil, nil, tr, stubPreprocessor{})

		got := svc.TranslateToEnglish(context.Background(), "la vacuna es segura", "es")
		if got != "la vacuna es segura" {
			t.Errorf("got %q", got)
		}
	})
}

func TestExtractArticleText(t *testing.T) {
	svc := NewService(&stubExtractor{text: "article body"}, nil, nil, stubPreprocessor{})

	got, err := svc.ExtractArticleText(context.Background(), " https://example.com/a ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "article body" {
		t.Errorf("got %q", got)
	}
}

func TestPreprocessAndKeyPhrases(t *testing.T) {
	svc := NewService(nil, nil, nil, stubPreprocessor{})

	if got := svc.Preprocess("Vaccines WORK"); got != "vaccines work" {
		t.Errorf("Preprocess = %q", got)
	}
	phrases := svc.KeyPhrases("vaccine immunity", 5)
	if len(phrases) != 2 || phrases[0] != "vaccine" {
		t.Errorf("KeyPhrases = %v", phrases)
	}
}
