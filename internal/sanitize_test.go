package internal

import (
	"strings"
	"testing"
)

func TestSanitizeTextKeepsPlainTextVerbatim(t *testing.T) {
	inputs := []string{
		"hello world",
		"math: 1 < 2 && 3 > 2",
		"markup stays literal: <b>bold</b> &amp; more",
		"multi\nline\ttext",
		"unicode ok: héllo ☃",
	}
	for _, input := range inputs {
		if got := SanitizeText(input); got != input {
			t.Errorf("SanitizeText(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestSanitizeTextStripsControlCharacters(t *testing.T) {
	input := "evil\x1b[31mred\x1b[0m\x07 text"
	got := SanitizeText(input)
	if strings.ContainsRune(got, '\x1b') || strings.ContainsRune(got, '\x07') {
		t.Fatalf("control characters survived: %q", got)
	}
	if got != "evil[31mred[0m text" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"  bob  ", "bob"},
		{"<script>alert(1)</script>carol", "carol"},
		{"<b>dave</b>", "dave"},
		{"", "anon"},
		{"<img src=x>", "anon"},
		{"eve\x1b[2J", "eve"},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeNameCapsLength(t *testing.T) {
	long := strings.Repeat("x", 100)
	if got := SanitizeName(long); len(got) != maxNameLength {
		t.Fatalf("expected %d chars, got %d", maxNameLength, len(got))
	}
}
