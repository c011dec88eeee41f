package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateResetCode возвращает случайный 6-значный код (100000-999999)
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
