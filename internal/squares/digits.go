// internal/squares/digits.go
//
// Digit-group codec shared by the parser and serializer, plus the
// FormatError type every parsing failure is reported as.

package squares

import (
	"fmt"
	"strings"
)

// FormatError reports input that fails a structural or count
// expectation of the text grammar. The message identifies the
// offending token or line.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return e.Msg }

// formatErrf builds a *FormatError from a format string.
func formatErrf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// ParseDigitGroup parses a single digit token: "7" -> [7] for a
// 10-slot axis, "03" -> [0 3] for a 5-slot axis (characters kept in
// written order, not sorted). Any other length or a non-digit
// character is a FormatError.
func ParseDigitGroup(token string) (DigitGroup, error) {
	if len(token) != 1 && len(token) != 2 {
		return nil, formatErrf("digit group %q must be 1 or 2 digits", token)
	}
	g := make(DigitGroup, 0, len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < '0' || c > '9' {
			return nil, formatErrf("digit group %q contains a non-digit", token)
		}
		g = append(g, int(c-'0'))
	}
	return g, nil
}

// FormatDigits is the codec inverse: concatenates 1 or 2 digits into a
// token. Defined only for groups the parser can produce.
func FormatDigits(g DigitGroup) string {
	var b strings.Builder
	for _, d := range g {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}
