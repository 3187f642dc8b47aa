package toon

import "testing"

func TestIsNumericLiteral(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"0", true},
		{"0.5", true},
		{"42", true},
		{"-7", true},
		{"1e5", true},
		{"1.5E-3", true},
		{"-0", true},
		{"05", false},
		{"00", false},
		{"0e1", false},
		{"", false},
		{"abc", false},
		{"1e400", false},
		{"0x10", false},
		{"1_000", false},
		{"NaN", false},
		{"Infinity", false},
		{"1.2.3", false},
		{" 1", false},
	}
	for _, tt := range tests {
		if got := isNumericLiteral(tt.token); got != tt.want {
			t.Errorf("isNumericLiteral(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestIsBooleanOrNull(t *testing.T) {
	for _, s := range []string{"true", "false", "null"} {
		if !isBooleanOrNull(s) {
			t.Errorf("isBooleanOrNull(%q) = false", s)
		}
	}
	for _, s := range []string{"True", "NULL", "nil", "", "yes"} {
		if isBooleanOrNull(s) {
			t.Errorf("isBooleanOrNull(%q) = true", s)
		}
	}
}

func TestIsValidUnquotedKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"a", true},
		{"_x", true},
		{"A_b.c", true},
		{"user2", true},
		{"9a", false},
		{"a-b", false},
		{"a b", false},
		{"", false},
		{".a", false},
		{"ключ", false},
	}
	for _, tt := range tests {
		if got := isValidUnquotedKey(tt.key); got != tt.want {
			t.Errorf("isValidUnquotedKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIsSafeUnquotedValue(t *testing.T) {
	tests := []struct {
		value string
		delim Delimiter
		want  bool
	}{
		{"hello", Comma, true},
		{"hello world", Comma, true},
		{"a|b", Comma, true},
		{"a,b", Pipe, true},
		{"", Comma, false},
		{" a", Comma, false},
		{"a ", Comma, false},
		{"true", Comma, false},
		{"null", Comma, false},
		{"42", Comma, false},
		{"-1.5", Comma, false},
		{"05", Comma, false},
		{"1E5", Comma, false},
		{"a:b", Comma, false},
		{`a"b`, Comma, false},
		{`a\b`, Comma, false},
		{"[a]", Comma, false},
		{"{a}", Comma, false},
		{"a\nb", Comma, false},
		{"a\tb", Comma, false},
		{"a,b", Comma, false},
		{"a|b", Pipe, false},
		{"-a", Comma, false},
		{"a-b", Comma, true},
	}
	for _, tt := range tests {
		if got := isSafeUnquotedValue(tt.value, tt.delim); got != tt.want {
			t.Errorf("isSafeUnquotedValue(%q, %s) = %v, want %v", tt.value, tt.delim, got, tt.want)
		}
	}
}
