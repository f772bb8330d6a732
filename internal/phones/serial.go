package phones

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const serialSuffixLen = 5

var base36Alphabet = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateSerialNumber produces a shop serial of the form
// PH-<unix-millis>-<5 upper base36>.
func GenerateSerialNumber(now time.Time) (string, error) {
	suffix := make([]byte, serialSuffixLen)
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating serial suffix: %w", err)
		}
		suffix[i] = base36Alphabet[n.Int64()]
	}
	return fmt.Sprintf("PH-%d-%s", now.UnixMilli(), suffix), nil
}

// IsSerialNumber reports whether the value matches the generated serial shape.
func IsSerialNumber(value string) bool {
	parts := strings.Split(value, "-")
	if len(parts) != 3 || parts[0] != "PH" {
		return false
	}
	if parts[1] == "" || len(parts[2]) != serialSuffixLen {
		return false
	}
	for _, r := range parts[1] {
		if r < '0' || r > '9' {
			return false
		}
	}
	for _, r := range parts[2] {
		if !strings.ContainsRune(string(base36Alphabet), r) {
			return false
		}
	}
	return true
}
