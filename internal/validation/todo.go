package validation

import (
	"fmt"
	"strings"

	"github.com/iudanet/todosync/internal/models"
)

// MaxTitleLen максимальная длина заголовка задачи в символах
const MaxTitleLen = 500

// NormalizeTitle убирает пробелы по краям заголовка
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// ValidateTitle проверяет заголовок задачи
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be empty")
	}

	if len([]rune(title)) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}

	return nil
}

// ValidatePriority проверяет, что приоритет в диапазоне 1-4
func ValidatePriority(priority int) error {
	if priority < models.PriorityHighest || priority > models.PriorityLowest {
		return fmt.Errorf("priority must be between %d and %d", models.PriorityHighest, models.PriorityLowest)
	}
	return nil
}

// ValidatePatch проверяет частичное обновление задачи
func ValidatePatch(p models.TodoPatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("nothing to update")
	}
	if p.Title != nil {
		if err := ValidateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Priority != nil {
		if err := ValidatePriority(*p.Priority); err != nil {
			return err
		}
	}
	return nil
}
