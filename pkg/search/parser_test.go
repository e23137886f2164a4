package search

import (
	"reflect"
	"testing"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain query unchanged",
			raw:  "capital of France",
			want: "capital of France",
		},
		{
			name: "question mark stripped",
			raw:  "What is the capital of France?",
			want: "What is the capital of France",
		},
		{
			name: "quotes stripped",
			raw:  `find "exact phrase" and 'single quoted'`,
			want: "find exact phrase and single quoted",
		},
		{
			name: "whitespace collapsed",
			raw:  "  too   many \t spaces \n here ",
			want: "too many spaces here",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "only syntax characters",
			raw:  `?"'???`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeQuery(tt.raw); got != tt.want {
				t.Errorf("SanitizeQuery(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("What is the Capital of France?")
	want := []string{"what", "is", "the", "capital", "of", "france"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}

	if tokens := Tokenize(`?"'`); tokens != nil {
		t.Errorf("Tokenize of syntax-only input = %v, want nil", tokens)
	}
}
