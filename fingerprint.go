package cardforge

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// djb2 seed.
const fingerprintSeed uint32 = 5381

// ContentText assembles the text a fingerprint is computed over.
func ContentText(components, wordsToAvoid, cardIdea string) string {
	return "Components:\n" + components +
		"\n\nWords to Avoid:\n" + wordsToAvoid +
		"\n\nCard Idea:\n" + cardIdea
}

// Fingerprint returns the djb2 hash of ContentText as 8 lowercase hex digits.
//
// The hash runs over UTF-16 code units, not UTF-8 bytes: runes above U+FFFF
// contribute their surrogate pair. Invalid UTF-8 is replaced the way
// TextDecoder replaces it, one U+FFFD per maximal invalid subsequence, so a
// JavaScript implementation iterating charCodeAt over the decoded text
// agrees.
func Fingerprint(components, wordsToAvoid, cardIdea string) string {
	h := fingerprintSeed
	text := ContentText(components, wordsToAvoid, cardIdea)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			size = invalidRunLen(text[i:])
		}
		i += size

		if r1, r2 := utf16.EncodeRune(r); r1 != unicode.ReplacementChar {
			h = h*33 + uint32(r1)
			h = h*33 + uint32(r2)
			continue
		}
		h = h*33 + uint32(r)
	}
	return fmt.Sprintf("%08x", h)
}

// invalidRunLen returns how many bytes at the start of s, which holds an
// invalid sequence, decode to a single U+FFFD: the lead byte plus every
// continuation byte that was still acceptable for it.
func invalidRunLen(s string) int {
	lo, hi, need := byte(0x80), byte(0xBF), 0
	switch b := s[0]; {
	case b >= 0xC2 && b <= 0xDF:
		need = 1
	case b == 0xE0:
		lo, need = 0xA0, 2
	case b == 0xED:
		hi, need = 0x9F, 2
	case b >= 0xE1 && b <= 0xEF:
		need = 2
	case b == 0xF0:
		lo, need = 0x90, 3
	case b >= 0xF1 && b <= 0xF3:
		need = 3
	case b == 0xF4:
		hi, need = 0x8F, 3
	}

	n := 1
	for ; n <= need && n < len(s); n++ {
		if c := s[n]; c < lo || c > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}

// ValidFingerprint reports whether s has the shape of a Fingerprint result.
func ValidFingerprint(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ComponentsText serialises a list for fingerprinting and generation: one
// line per component, "<id>. <text>", with " (after 1, 2)" appended when the
// component has prerequisites.
func ComponentsText(list List) string {
	var sb strings.Builder
	for i, c := range list {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(c.ID))
		sb.WriteString(". ")
		sb.WriteString(c.Text)
		if len(c.Prerequisites) == 0 {
			continue
		}
		sb.WriteString(" (after ")
		for j, p := range c.Prerequisites {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(p))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
