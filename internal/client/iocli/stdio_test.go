package iocli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnPrintfWrite(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStreams(strings.NewReader(""), &out)

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s\n", 1, "abc")
	n, err := stdio.Write([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, "hello world\ntest 1 abc\nraw", out.String())
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   string
		want    []string
	}{
		{name: "single line", input: "user input\n", want: []string{"user input"}},
		{name: "several reads share the buffer", input: "alice@example.com\nsecret-pass\n", want: []string{"alice@example.com", "secret-pass"}},
		{name: "last line without newline", input: "  trimmed  ", want: []string{"trimmed"}},
		{name: "empty input", input: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			stdio := NewStreams(strings.NewReader(tt.input), &out)

			if tt.wantErr != nil {
				_, err := stdio.ReadInput("Prompt: ")
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			for _, want := range tt.want {
				got, err := stdio.ReadInput("Prompt: ")
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			assert.Equal(t, strings.Repeat("Prompt: ", len(tt.want)), out.String())
		})
	}
}

func TestReadPassword_NotTerminal(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStreams(strings.NewReader("hunter22-long\n"), &out)

	pw, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter22-long", pw)
	assert.Equal(t, "Password: ", out.String())
}
