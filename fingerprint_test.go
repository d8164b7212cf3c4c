package cardforge

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

type fingerprintVector struct {
	Name         string `json:"name"`
	Components   string `json:"components"`
	WordsToAvoid string `json:"wordsToAvoid"`
	CardIdea     string `json:"cardIdea"`
	Fingerprint  string `json:"fingerprint"`
}

func loadFingerprintVectors(t *testing.T) []fingerprintVector {
	t.Helper()
	data, err := os.ReadFile("testdata/fingerprint_vectors.json")
	if err != nil {
		t.Fatalf("read vectors: %v", err)
	}
	var file struct {
		Vectors []fingerprintVector `json:"vectors"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("parse vectors: %v", err)
	}
	if len(file.Vectors) == 0 {
		t.Fatal("no vectors in testdata/fingerprint_vectors.json")
	}
	return file.Vectors
}

func TestFingerprintGoldenVectors(t *testing.T) {
	for _, v := range loadFingerprintVectors(t) {
		t.Run(v.Name, func(t *testing.T) {
			got := Fingerprint(v.Components, v.WordsToAvoid, v.CardIdea)
			if got != v.Fingerprint {
				t.Errorf("Fingerprint() = %q, want %q", got, v.Fingerprint)
			}
		})
	}
}

func TestFingerprintEmptyTemplate(t *testing.T) {
	if got := ContentText("", "", ""); got != "Components:\n\n\nWords to Avoid:\n\n\nCard Idea:\n" {
		t.Fatalf("ContentText() = %q", got)
	}
	if got := Fingerprint("", "", ""); got != "79c15d11" {
		t.Errorf("Fingerprint(empty) = %q, want %q", got, "79c15d11")
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	first := Fingerprint("1. a", "b", "c")
	for i := 0; i < 100; i++ {
		if got := Fingerprint("1. a", "b", "c"); got != first {
			t.Fatalf("call %d = %q, want %q", i, got, first)
		}
	}
}

func TestFingerprintFormat(t *testing.T) {
	inputs := []string{
		"",
		"a",
		strings.Repeat("overflow ", 1000),
		"\x00",
		"😀😀😀",
		"\xff\xfe",
	}
	for _, in := range inputs {
		got := Fingerprint(in, in, in)
		if !ValidFingerprint(got) {
			t.Errorf("Fingerprint(%q) = %q, not 8 lowercase hex chars", in, got)
		}
	}
}

func TestFingerprintInvalidUTF8HashesAsReplacementChar(t *testing.T) {
	got := Fingerprint("\xff", "", "")
	if want := Fingerprint("\uFFFD", "", ""); got != want {
		t.Errorf("Fingerprint(invalid) = %q, want %q", got, want)
	}
	if got != "f8ffbf4e" {
		t.Errorf("Fingerprint(invalid) = %q, want %q", got, "f8ffbf4e")
	}
}

func TestFingerprintCollapsesInvalidSequences(t *testing.T) {
	tests := []struct {
		name    string
		invalid string
		decoded string
	}{
		{"truncated three-byte", "\xe2\x82", "\uFFFD"},
		{"truncated then ascii", "\xe2\x82x", "\uFFFDx"},
		{"truncated four-byte", "\xf0\x9f\x98", "\uFFFD"},
		{"encoded surrogate", "\xed\xa0\x80", "\uFFFD\uFFFD\uFFFD"},
		{"overlong two-byte", "\xc0\xaf", "\uFFFD\uFFFD"},
		{"overlong three-byte", "\xe0\x80", "\uFFFD\uFFFD"},
		{"above U+10FFFF", "\xf4\x90\x80\x80", "\uFFFD\uFFFD\uFFFD\uFFFD"},
		{"lone continuation", "a\x80b", "a\uFFFDb"},
		{"valid euro sign", "\xe2\x82\xac", "\u20ac"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fingerprint(tt.invalid, "", "")
			if want := Fingerprint(tt.decoded, "", ""); got != want {
				t.Errorf("Fingerprint(%q) = %q, want %q", tt.invalid, got, want)
			}
		})
	}

	// TextDecoder yields a single U+FFFD for a truncated sequence.
	if got := Fingerprint("\xe2\x82", "", ""); got != "f8ffbf4e" {
		t.Errorf("Fingerprint(truncated) = %q, want %q", got, "f8ffbf4e")
	}
}

func TestFingerprintUsesCodeUnitsNotBytes(t *testing.T) {
	// Hashing the UTF-8 bytes of this input yields 0348ee37.
	got := Fingerprint("1. Wave 👋", "🚫", "Emoji 😀 card")
	if got == "0348ee37" {
		t.Fatal("fingerprint was computed over UTF-8 bytes")
	}
	if got != "9d5d327e" {
		t.Errorf("Fingerprint() = %q, want %q", got, "9d5d327e")
	}
}

func TestFingerprintFieldsAreSeparated(t *testing.T) {
	a := Fingerprint("x", "", "")
	b := Fingerprint("", "x", "")
	c := Fingerprint("", "", "x")
	if a == b || b == c || a == c {
		t.Errorf("fields collide: %q %q %q", a, b, c)
	}
}

func TestValidFingerprint(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"79c15d11", true},
		{"00000000", true},
		{"79C15D11", false},
		{"79c15d1", false},
		{"79c15d111", false},
		{"79c15d1g", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidFingerprint(tt.in); got != tt.want {
			t.Errorf("ValidFingerprint(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComponentsText(t *testing.T) {
	list := List{
		{ID: 1, Text: "a"},
		{ID: 2, Text: "b", Prerequisites: []int{1}},
		{ID: 3, Text: "c", Prerequisites: []int{1, 2}},
	}
	want := "1. a\n2. b (after 1)\n3. c (after 1, 2)"
	if got := ComponentsText(list); got != want {
		t.Errorf("ComponentsText() = %q, want %q", got, want)
	}
	if got := ComponentsText(nil); got != "" {
		t.Errorf("ComponentsText(nil) = %q, want empty", got)
	}
}

func TestCardFingerprint(t *testing.T) {
	card := Card{
		ID: "c1",
		Components: List{
			{ID: 1, Text: "a"},
			{ID: 2, Text: "b", Prerequisites: []int{1}},
			{ID: 3, Text: "c", Prerequisites: []int{1, 2}},
		},
	}
	if got := card.Fingerprint(); got != "32f1cf31" {
		t.Errorf("Card.Fingerprint() = %q, want %q", got, "32f1cf31")
	}
	if got := card.ContentText(); !strings.HasPrefix(got, "Components:\n1. a\n") {
		t.Errorf("Card.ContentText() = %q", got)
	}
}
