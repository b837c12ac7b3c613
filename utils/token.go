package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const recoveryCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRecoveryKey returns a 16-character key grouped in blocks of four,
// e.g. "K3QH-99XA-M2PL-0VBC". Shown to the user exactly once.
func GenerateRecoveryKey() (string, error) {
	var sb strings.Builder
	for i := 0; i < 16; i++ {
		if i > 0 && i%4 == 0 {
			sb.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(recoveryCharset))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(recoveryCharset[n.Int64()])
	}
	return sb.String(), nil
}
