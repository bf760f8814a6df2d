// Package emoji decides whether post content is made of emoji only.
// Content is NFC normalised and trimmed first; length is counted in runes
package emoji

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxRunes is the longest content a post may carry
const MaxRunes = 280

var (
	// ErrEmpty is returned for content that is empty after trimming
	ErrEmpty = errors.New("content is empty")
	// ErrTooLong is returned for content over MaxRunes
	ErrTooLong = fmt.Errorf("content exceeds %d characters", MaxRunes)
	// ErrNotEmoji is returned when a rune outside the emoji set is found
	ErrNotEmoji = errors.New("content must contain only emoji")
)

const (
	zwj        = '\u200d'
	vs15       = '\ufe0e'
	vs16       = '\ufe0f'
	keycap     = '\u20e3'
	riFirst    = 0x1F1E6
	riLast     = 0x1F1FF
	toneFirst  = 0x1F3FB
	toneLast   = 0x1F3FF
	tagFirst   = 0xE0020
	tagLast    = 0xE007F
	latinLimit = 2
)

// pictographic approximates the Unicode Extended_Pictographic property (emoji-data 15.1)
var pictographic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x00A9, 0x00A9, 1}, {0x00AE, 0x00AE, 1},
		{0x203C, 0x203C, 1}, {0x2049, 0x2049, 1},
		{0x2122, 0x2122, 1}, {0x2139, 0x2139, 1},
		{0x2194, 0x2199, 1}, {0x21A9, 0x21AA, 1},
		{0x231A, 0x231B, 1}, {0x2328, 0x2328, 1},
		{0x2388, 0x2388, 1}, {0x23CF, 0x23CF, 1},
		{0x23E9, 0x23F3, 1}, {0x23F8, 0x23FA, 1},
		{0x24C2, 0x24C2, 1}, {0x25AA, 0x25AB, 1},
		{0x25B6, 0x25B6, 1}, {0x25C0, 0x25C0, 1},
		{0x25FB, 0x25FE, 1}, {0x2600, 0x2605, 1},
		{0x2607, 0x2612, 1}, {0x2614, 0x2685, 1},
		{0x2690, 0x2705, 1}, {0x2708, 0x2712, 1},
		{0x2714, 0x2714, 1}, {0x2716, 0x2716, 1},
		{0x271D, 0x271D, 1}, {0x2721, 0x2721, 1},
		{0x2728, 0x2728, 1}, {0x2733, 0x2734, 1},
		{0x2744, 0x2744, 1}, {0x2747, 0x2747, 1},
		{0x274C, 0x274C, 1}, {0x274E, 0x274E, 1},
		{0x2753, 0x2755, 1}, {0x2757, 0x2757, 1},
		{0x2763, 0x2767, 1}, {0x2795, 0x2797, 1},
		{0x27A1, 0x27A1, 1}, {0x27B0, 0x27B0, 1},
		{0x27BF, 0x27BF, 1}, {0x2934, 0x2935, 1},
		{0x2B05, 0x2B07, 1}, {0x2B1B, 0x2B1C, 1},
		{0x2B50, 0x2B50, 1}, {0x2B55, 0x2B55, 1},
		{0x3030, 0x3030, 1}, {0x303D, 0x303D, 1},
		{0x3297, 0x3297, 1}, {0x3299, 0x3299, 1},
	},
	R32: []unicode.Range32{
		{0x1F000, 0x1F0FF, 1}, {0x1F10D, 0x1F10F, 1},
		{0x1F12F, 0x1F12F, 1}, {0x1F16C, 0x1F171, 1},
		{0x1F17E, 0x1F17F, 1}, {0x1F18E, 0x1F18E, 1},
		{0x1F191, 0x1F19A, 1}, {0x1F1AD, 0x1F1E5, 1},
		{0x1F201, 0x1F20F, 1}, {0x1F21A, 0x1F21A, 1},
		{0x1F22F, 0x1F22F, 1}, {0x1F232, 0x1F23A, 1},
		{0x1F23C, 0x1F23F, 1}, {0x1F249, 0x1F3FA, 1},
		{0x1F400, 0x1F53D, 1}, {0x1F546, 0x1F64F, 1},
		{0x1F680, 0x1F6FF, 1}, {0x1F774, 0x1F77F, 1},
		{0x1F7D5, 0x1F7FF, 1}, {0x1F80C, 0x1F80F, 1},
		{0x1F848, 0x1F84F, 1}, {0x1F85A, 0x1F85F, 1},
		{0x1F888, 0x1F88F, 1}, {0x1F8AE, 0x1F8FF, 1},
		{0x1F90C, 0x1F93A, 1}, {0x1F93C, 0x1F945, 1},
		{0x1F947, 0x1FAFF, 1}, {0x1FC00, 0x1FFFD, 1},
	},
	LatinOffset: latinLimit,
}

// Normalize returns the NFC form of s with surrounding whitespace removed
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Validate checks already normalised content: 1..MaxRunes runes, every one of them emoji,
// with at least one pictograph, flag letter or keycap
func Validate(s string) error {
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		return ErrEmpty
	case n > MaxRunes:
		return ErrTooLong
	}
	if !utf8.ValidString(s) {
		return ErrNotEmoji
	}
	rs := []rune(s)
	visible := false
	for i, r := range rs {
		if isKeycapBase(r) && keycapFollows(rs[i+1:]) {
			visible = true
			continue
		}
		if !IsEmojiRune(r) {
			return ErrNotEmoji
		}
		if (r >= riFirst && r <= riLast) || unicode.Is(pictographic, r) {
			visible = true
		}
	}
	// joiners, selectors and tags alone render as nothing
	if !visible {
		return ErrNotEmoji
	}
	return nil
}

// Check normalises s and validates the result, returning the stored form
func Check(s string) (string, error) {
	out := Normalize(s)
	if err := Validate(out); err != nil {
		return "", err
	}
	return out, nil
}

// Valid reports whether s is acceptable post content
func Valid(s string) bool {
	_, err := Check(s)
	return err == nil
}

// IsEmojiRune reports whether r is pictographic or an emoji sequence component
func IsEmojiRune(r rune) bool {
	switch {
	case r == zwj, r == vs15, r == vs16, r == keycap:
		return true
	case r >= riFirst && r <= riLast:
		return true
	case r >= toneFirst && r <= toneLast:
		return true
	case r >= tagFirst && r <= tagLast:
		return true
	}
	return unicode.Is(pictographic, r)
}

func isKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}

// keycapFollows reports whether rest starts with U+20E3, optionally after a variation selector
func keycapFollows(rest []rune) bool {
	if len(rest) > 0 && (rest[0] == vs16 || rest[0] == vs15) {
		rest = rest[1:]
	}
	return len(rest) > 0 && rest[0] == keycap
}
