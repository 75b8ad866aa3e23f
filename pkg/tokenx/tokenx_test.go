package tokenx

import "testing"

func TestNormalizeModelName(t *testing.T) {
	cases := map[string]string{
		"gpt-3.5-turbo":        "gpt-3.5-turbo",
		"GPT-4o":               "gpt-4",
		"openai/gpt-3.5-turbo": "gpt-3.5-turbo",
		"mystery-model":        "gpt-3.5-turbo",
	}
	for in, want := range cases {
		if got := normalizeModelName(in); got != want {
			t.Fatalf("normalizeModelName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate_ZeroBudget(t *testing.T) {
	if got := NewCounter().Truncate("anything", "gpt-3.5-turbo", 0); got != "" {
		t.Fatalf("unexpected: %q", got)
	}
}
