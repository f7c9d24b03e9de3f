package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ticketCharset is the alphabet for ticket codes.  Uppercase letters
// and digits keep codes readable when printed on badges and scannable
// when typed by hand.
const ticketCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TicketCodeLength is the default length of generated ticket codes.
const TicketCodeLength = 8

// GenerateTicketCode returns a random ticket code of the given length
// drawn from the uppercase alphanumeric alphabet.  A non-positive
// length falls back to TicketCodeLength.
func GenerateTicketCode(length int) (string, error) {
	if length <= 0 {
		length = TicketCodeLength
	}
	code := make([]byte, length)
	max := big.NewInt(int64(len(ticketCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = ticketCharset[n.Int64()]
	}
	return string(code), nil
}

// GenerateUniqueCodes produces count fresh ticket codes that collide
// neither with each other nor with the provided existing set.  It
// retries up to ten times per requested code before giving up, which
// bounds the loop when the space is nearly exhausted.
func GenerateUniqueCodes(count int, existing []string) ([]string, error) {
	seen := make(map[string]struct{}, len(existing)+count)
	for _, c := range existing {
		seen[c] = struct{}{}
	}
	codes := make([]string, 0, count)
	maxAttempts := count * 10
	for attempts := 0; len(codes) < count && attempts < maxAttempts; attempts++ {
		code, err := GenerateTicketCode(TicketCodeLength)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	if len(codes) < count {
		return nil, fmt.Errorf("could not generate %d unique codes, got %d", count, len(codes))
	}
	return codes, nil
}
