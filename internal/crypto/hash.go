package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch возвращается, если секрет не совпадает с хешем
var ErrMismatch = errors.New("secret does not match hash")

// HashPassword хеширует пароль с помощью bcrypt
// cost <= 0 означает bcrypt.DefaultCost
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword проверяет пароль против bcrypt хеша
func VerifyPassword(password, hash string) error {
	if hash == "" {
		return fmt.Errorf("hash cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to compare password: %w", err)
	}

	return nil
}

// HashToken хеширует токен или код с использованием SHA256
// Используется для refresh токенов и кодов сброса: значения случайные,
// поэтому детерминированный хеш позволяет искать по нему в БД
func HashToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token cannot be empty")
	}

	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:]), nil
}

// VerifyToken сравнивает токен с сохраненным SHA256 хешем за постоянное время
func VerifyToken(token, hashed string) error {
	if hashed == "" {
		return fmt.Errorf("hashed token cannot be empty")
	}

	computed, err := HashToken(token)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(computed), []byte(hashed)) != 1 {
		return ErrMismatch
	}

	return nil
}
