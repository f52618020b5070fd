package schema

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds a single raw field value, in bytes.
	DefaultMaxInputSize = 2048
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "PLACIFY_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitize rejects oversized or malformed input and strips control
// characters other than newline, tab and carriage return, so raw values are
// safe to log and to echo back to a terminal.
func Sanitize(raw string) (string, error) {
	limit := maxInputSize()
	if len(raw) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(raw), limit)
	}
	if !utf8.ValidString(raw) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range raw {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
