package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		errMsg  string
		wantErr bool
	}{
		{name: "valid email", email: "alice@example.com"},
		{name: "valid email with plus", email: "alice+todo@example.com"},
		{name: "empty", email: "", wantErr: true, errMsg: "email cannot be empty"},
		{name: "no at sign", email: "alice.example.com", wantErr: true, errMsg: "invalid format"},
		{name: "display name form", email: "Alice <alice@example.com>", wantErr: true, errMsg: "invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid", password: "correct-horse"},
		{name: "min length", password: strings.Repeat("a", MinPasswordLen)},
		{name: "empty", password: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too short", password: "short", wantErr: true, errMsg: "at least"},
		{name: "too long", password: strings.Repeat("a", MaxPasswordLen+1), wantErr: true, errMsg: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateResetCode(t *testing.T) {
	assert.NoError(t, ValidateResetCode("012345"))
	assert.Error(t, ValidateResetCode("12345"))
	assert.Error(t, ValidateResetCode("12345a"))
	assert.Error(t, ValidateResetCode(""))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName(""))
	assert.NoError(t, ValidateName("Алиса"))
	assert.Error(t, ValidateName(strings.Repeat("x", MaxNameLen+1)))
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "valid", title: "buy milk"},
		{name: "unicode at limit", title: strings.Repeat("я", MaxTitleLen)},
		{name: "empty", title: "", wantErr: true},
		{name: "whitespace only", title: "   ", wantErr: true},
		{name: "too long", title: strings.Repeat("x", MaxTitleLen+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "buy milk", NormalizeTitle("  buy milk\t\n"))
	assert.Equal(t, "a  b", NormalizeTitle("a  b"), "inner spaces kept")
	assert.Empty(t, NormalizeTitle("   "))
}

func TestValidatePriority(t *testing.T) {
	for p := models.PriorityHighest; p <= models.PriorityLowest; p++ {
		assert.NoError(t, ValidatePriority(p))
	}
	assert.Error(t, ValidatePriority(0))
	assert.Error(t, ValidatePriority(5))
}

func TestValidatePatch(t *testing.T) {
	title := "new"
	empty := ""
	prio := 7
	done := true

	assert.Error(t, ValidatePatch(models.TodoPatch{}), "empty patch")
	assert.NoError(t, ValidatePatch(models.TodoPatch{Title: &title}))
	assert.NoError(t, ValidatePatch(models.TodoPatch{Completed: &done}))
	assert.Error(t, ValidatePatch(models.TodoPatch{Title: &empty}))
	assert.Error(t, ValidatePatch(models.TodoPatch{Priority: &prio}))
}
