package groupcart

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// CodeLength is the number of hex characters in a join code.
const CodeLength = 6

// Code is the short, human-shareable handle of a group cart.
type Code string

// GenerateCode draws a code from r, normally crypto/rand.Reader.
// Uniqueness is the caller's concern.
func GenerateCode(r io.Reader) (Code, error) {
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, CodeLength/2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("generate join code: %w", err)
	}
	return Code(strings.ToUpper(hex.EncodeToString(buf))), nil
}

// ParseCode normalizes user input and checks the code shape.
func ParseCode(s string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != CodeLength {
		return "", errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q is not %d characters", s, CodeLength))
	}
	if _, err := hex.DecodeString(code); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q is not hexadecimal", s))
	}
	return Code(code), nil
}

// LookupCode parses a code a caller uses to find a cart. A code of the wrong
// shape names no cart, so it fails with errs.ErrObjectNotFound.
func LookupCode(s string) (Code, error) {
	code, err := ParseCode(s)
	if err != nil {
		return "", errs.NewObjectNotFoundError("group cart", strings.TrimSpace(s))
	}
	return code, nil
}

func (c Code) String() string {
	return string(c)
}
