// Package kegid generates keg identifiers and the QR code strings printed on
// keg labels.
package kegid

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const (
	kegPrefix = "K-"
	qrPrefix  = "SK"

	minDigits = 10000000
	maxDigits = 99999999
)

// DefaultAttempts bounds GenerateUniqueKegID when callers have no preference.
const DefaultAttempts = 20

// ErrIDSpaceExhausted is returned when no unused keg id was found.
var ErrIDSpaceExhausted = errors.New("no unused keg id found")

var (
	qrPattern    = regexp.MustCompile(`^SK\d{8}$`)
	kegIDPattern = regexp.MustCompile(`^K-\d{8}$`)
)

// GenerateKegID returns "K-" followed by a random 8-digit number.
func GenerateKegID() string {
	n := minDigits + rand.Intn(maxDigits-minDigits+1)
	return fmt.Sprintf("%s%d", kegPrefix, n)
}

// GenerateUniqueKegID draws ids until exists reports one as unused.
func GenerateUniqueKegID(exists func(id string) bool, attempts int) (string, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for i := 0; i < attempts; i++ {
		id := GenerateKegID()
		if exists == nil || !exists(id) {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

// GenerateQRCode derives the QR payload for a keg id: K-12345678 -> SK12345678.
func GenerateQRCode(kegID string) string {
	return qrPrefix + strings.Replace(kegID, kegPrefix, "", 1)
}

// ExtractKegIDFromQR reverses GenerateQRCode. Strings without the SK prefix
// are returned unchanged so a scanned keg id also resolves.
func ExtractKegIDFromQR(qrCode string) string {
	if strings.HasPrefix(qrCode, qrPrefix) {
		return kegPrefix + qrCode[len(qrPrefix):]
	}
	return qrCode
}

// IsValidQRCode reports whether qrCode is SK followed by 8 digits.
func IsValidQRCode(qrCode string) bool {
	return qrPattern.MatchString(qrCode)
}

// IsValidKegID reports whether kegID is K- followed by 8 digits.
func IsValidKegID(kegID string) bool {
	return kegIDPattern.MatchString(kegID)
}
