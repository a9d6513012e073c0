package kernel

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// shortCodeLength is the fixed length of human-readable order codes.
const shortCodeLength = 6

// shortCodeAlphabet deliberately omits 0/O and 1/I to keep codes readable
// over the phone.
const shortCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// ErrShortCodeIsNotConstructed indicates that a ShortCode was not created
// through NewShortCode or ShortCodeFromString.
var ErrShortCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"short code must be created via NewShortCode or ShortCodeFromString")

// ShortCode is a six-character human-readable order code shown to customers
// and kitchen staff. It complements the order UUID, which stays an internal
// identifier. The zero value is invalid.
type ShortCode struct {
	value string
}

// NewShortCode generates a random six-character code. Codes are display aids
// for phone and kitchen use, not identifiers: the order UUID stays the key,
// so the rare collision between two codes is tolerated rather than enforced
// away.
func NewShortCode() ShortCode {
	var b strings.Builder
	for range shortCodeLength {
		b.WriteByte(shortCodeAlphabet[rand.IntN(len(shortCodeAlphabet))]) //nolint:gosec // not a secret
	}
	return ShortCode{value: b.String()}
}

// ShortCodeFromString reconstructs a ShortCode from persistence or input.
// The string must be exactly six characters from the code alphabet.
func ShortCodeFromString(s string) (ShortCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != shortCodeLength {
		return ShortCode{}, errs.NewValueIsInvalidErrorWithCause("short code",
			fmt.Errorf("%q is not %d characters", s, shortCodeLength))
	}
	for _, r := range s {
		if !strings.ContainsRune(shortCodeAlphabet, r) {
			return ShortCode{}, errs.NewValueIsInvalidErrorWithCause("short code",
				fmt.Errorf("%q contains character %q outside the code alphabet", s, r))
		}
	}
	return ShortCode{value: s}, nil
}

// String returns the code text.
func (c ShortCode) String() string {
	return c.value
}

// IsEqual reports whether both codes are the same.
func (c ShortCode) IsEqual(other ShortCode) bool {
	return c.value == other.value
}

// Validate returns ErrShortCodeIsNotConstructed for the zero value.
func (c ShortCode) Validate() error {
	if c.value == "" {
		return ErrShortCodeIsNotConstructed
	}
	return nil
}
