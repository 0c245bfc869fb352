package text_test

import (
	"testing"

	"medverify/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "ASCII text",
			input:    "hello",
			expected: 5,
		},
		{
			name:     "ASCII with spaces",
			input:    "hello world",
			expected: 11,
		},
		{
			name:     "accented text",
			input:    "santé",
			expected: 5,
		},
		{
			name:     "CJK text",
			input:    "你好世界",
			expected: 4,
		},
		{
			name:     "mixed text",
			input:    "hello世界",
			expected: 7,
		},
		{
			name:     "emoji",
			input:    "Hello👋",
			expected: 6,
		},
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
		{
			name:     "whitespace only",
			input:    " \t\n ",
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := text.CountRunes(tt.input)
			if result != tt.expected {
				t.Errorf("CountRunes(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "under limit unchanged",
			input:    "short text",
			max:      200,
			expected: "short text",
		},
		{
			name:     "exactly at limit unchanged",
			input:    "abcde",
			max:      5,
			expected: "abcde",
		},
		{
			name:     "over limit gets ellipsis",
			input:    "abcdefghij",
			max:      5,
			expected: "abcde...",
		},
		{
			name:     "multi-byte runes not split",
			input:    "日本語のテキスト",
			max:      3,
			expected: "日本語...",
		},
		{
			name:     "empty string",
			input:    "",
			max:      10,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := text.Truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "multiple spaces",
			input:    "a   b    c",
			expected: "a b c",
		},
		{
			name:     "newlines and tabs",
			input:    "a\n\nb\t\tc",
			expected: "a b c",
		},
		{
			name:     "leading and trailing",
			input:    "  hello world  ",
			expected: "hello world",
		},
		{
			name:     "already clean",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := text.CollapseWhitespace(tt.input)
			if result != tt.expected {
				t.Errorf("CollapseWhitespace(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes urls",
			input:    "visit https://scam.example.com/cure for details",
			expected: "visit for details",
		},
		{
			name:     "removes www urls",
			input:    "see www.example.com now",
			expected: "see now",
		},
		{
			name:     "removes email addresses",
			input:    "contact quack@example.com today",
			expected: "contact today",
		},
		{
			name:     "strips disallowed characters keeps punctuation",
			input:    `miracle* cure^ works~ (really!) - yes, it does.`,
			expected: "miracle cure works (really!) - yes, it does.",
		},
		{
			name:     "keeps accented and cjk letters",
			input:    "santé 世界 health",
			expected: "santé 世界 health",
		},
		{
			name:     "collapses whitespace",
			input:    "  a \n b  ",
			expected: "a b",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := text.Clean(tt.input)
			if result != tt.expected {
				t.Errorf("Clean(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFirstSentences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{
			name:     "takes first two of three",
			input:    "One. Two. Three.",
			n:        2,
			expected: "One. Two.",
		},
		{
			name:     "fewer sentences than requested",
			input:    "Only one.",
			n:        3,
			expected: "Only one.",
		},
		{
			name:     "zero sentences",
			input:    "One. Two.",
			n:        0,
			expected: "",
		},
		{
			name:     "no periods",
			input:    "no punctuation here",
			n:        2,
			expected: "no punctuation here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := text.FirstSentences(tt.input, tt.n)
			if result != tt.expected {
				t.Errorf("FirstSentences(%q, %d) = %q, expected %q", tt.input, tt.n, result, tt.expected)
			}
		})
	}
}
