package similarity

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{
			name:     "identical strings",
			a:        "machine learning",
			b:        "machine learning",
			expected: 1.0,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 1.0,
		},
		{
			name:     "one empty",
			a:        "deep learning",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "whitespace only equals empty",
			a:        "   ",
			b:        "",
			expected: 1.0,
		},
		{
			name:     "case insensitive",
			a:        "Machine Learning",
			b:        "machine learning",
			expected: 1.0,
		},
		{
			name:     "surrounding whitespace ignored",
			a:        "  machine learning  ",
			b:        "machine learning",
			expected: 1.0,
		},
		{
			name: "kitten sitting",
			a:    "kitten",
			b:    "sitting",
			// edit distance 3, max length 7
			expected: 4.0 / 7.0,
		},
		{
			name: "single substitution",
			a:    "flaw",
			b:    "flab",
			expected: 3.0 / 4.0,
		},
		{
			name:     "completely different",
			a:        "aaaa",
			b:        "bbbb",
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("StringSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestStringSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"randomized controlled trial", "randomised controlled trial"},
		{"kitten", "sitting"},
		{"a", "abcdef"},
		{"Nature Medicine", "nature medicine "},
	}

	for _, p := range pairs {
		ab := StringSimilarity(p[0], p[1])
		ba := StringSimilarity(p[1], p[0])
		if math.Abs(ab-ba) > epsilon {
			t.Errorf("StringSimilarity not symmetric for (%q, %q): %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestStringSimilarity_SelfIdentity(t *testing.T) {
	for _, s := range []string{"x", "machine learning in healthcare", "10.1000/xyz123"} {
		if got := StringSimilarity(s, s); got != 1.0 {
			t.Errorf("StringSimilarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestStringSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"", "long string that shares nothing"},
		{"abc", "xyz"},
		{"the quick brown fox", "the quick brown fox jumps"},
	}

	for _, p := range pairs {
		got := StringSimilarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("StringSimilarity(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestListSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected float64
	}{
		{
			name:     "both empty",
			a:        nil,
			b:        nil,
			expected: 1.0,
		},
		{
			name:     "one empty",
			a:        []string{"Smith J"},
			b:        nil,
			expected: 0.0,
		},
		{
			name:     "identical single author",
			a:        []string{"Smith J"},
			b:        []string{"Smith J"},
			expected: 1.0,
		},
		{
			name:     "identical authors different order",
			a:        []string{"Smith J", "Jones A"},
			b:        []string{"Jones A", "Smith J"},
			expected: 1.0,
		},
		{
			name:     "disjoint authors",
			a:        []string{"Smith J"},
			b:        []string{"Nakamura K"},
			expected: 0.0,
		},
		{
			name: "partial overlap",
			a:    []string{"Smith J", "Jones A"},
			b:    []string{"Smith J", "Garcia M", "Chen L"},
			// one match over max length 3
			expected: 1.0 / 3.0,
		},
		{
			name:     "near match above element threshold",
			a:        []string{"Smith, John"},
			b:        []string{"Smith, Johan"},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ListSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("ListSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"gumbo", "gambol", 2},
	}

	for _, tt := range tests {
		got := levenshtein([]rune(tt.a), []rune(tt.b))
		if got != tt.expected {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}
