package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen bcrypt игнорирует байты после 72-го
	MaxPasswordLen = 72
	// MaxNameLen максимальная длина отображаемого имени
	MaxNameLen = 64
	// ResetCodeLen длина кода сброса пароля
	ResetCodeLen = 6
)

var resetCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// NormalizeEmail приводит email к каноническому виду (trim + lower case)
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email has invalid format")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLen)
	}

	return nil
}

// ValidateName проверяет опциональное имя пользователя
func ValidateName(name string) error {
	if len([]rune(name)) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}
	return nil
}

// ValidateResetCode проверяет формат 6-значного кода
func ValidateResetCode(code string) error {
	if !resetCodePattern.MatchString(code) {
		return fmt.Errorf("code must be %d digits", ResetCodeLen)
	}
	return nil
}
