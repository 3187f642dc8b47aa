package toon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEscapeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", `a"b`, `back\slash`, "tab\there", "cr\rlf\n", `\"`, "unicode ✓"} {
		escaped := escapeString(s)
		got, err := unescapeString(escaped)
		if err != nil {
			t.Fatalf("unescapeString(%q): %v", escaped, err)
		}
		if got != s {
			t.Errorf("round trip of %q gave %q", s, got)
		}
	}

	if got := quoteString("say \"hi\"\n"); got != `"say \"hi\"\n"` {
		t.Errorf("quoteString = %s", got)
	}
}

func TestUnescapeErrors(t *testing.T) {
	tests := []struct {
		in  string
		off int
	}{
		{`abc\`, 3},
		{`a\qb`, 1},
		{`\x`, 0},
	}
	for _, tt := range tests {
		_, err := unescapeString(tt.in)
		ee, ok := err.(*escapeError)
		if !ok {
			t.Fatalf("unescapeString(%q) error = %v, want *escapeError", tt.in, err)
		}
		if ee.Off != tt.off {
			t.Errorf("unescapeString(%q) offset = %d, want %d", tt.in, ee.Off, tt.off)
		}
	}
}

func TestFindClosingQuote(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{`"abc"`, 4},
		{`"a\"b" rest`, 5},
		{`"a\\"`, 4},
		{`"open`, -1},
		{`"trailing\`, -1},
	}
	for _, tt := range tests {
		if got := findClosingQuote(tt.s, 0); got != tt.want {
			t.Errorf("findClosingQuote(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestFindUnquoted(t *testing.T) {
	tests := []struct {
		s    string
		c    byte
		want int
	}{
		{"a:b", ':', 1},
		{`"a:b":c`, ':', 5},
		{`"a\":b"`, ':', -1},
		{"none", ':', -1},
		{`"open:`, ':', -1},
	}
	for _, tt := range tests {
		if got := findUnquoted(tt.s, tt.c, 0); got != tt.want {
			t.Errorf("findUnquoted(%q, %q) = %d, want %d", tt.s, tt.c, got, tt.want)
		}
	}
}

func TestSplitDelimited(t *testing.T) {
	got, err := splitDelimited(`1, "a,b" ,"c\"d",`, ',')
	if err != nil {
		t.Fatal(err)
	}
	want := []span{
		{text: "1", off: 0},
		{text: ` "a,b" `, off: 2},
		{text: `"c\"d"`, off: 10},
		{text: "", off: 17},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(span{})); diff != "" {
		t.Errorf("splitDelimited mismatch (-want +got):\n%s", diff)
	}

	if sp := trimSpan(got[1]); sp.text != `"a,b"` || sp.off != 3 {
		t.Errorf("trimSpan = %+v", sp)
	}

	if _, err := splitDelimited(`a|"b|c`, '|'); err == nil {
		t.Error("expected error for unterminated quote")
	}
}
