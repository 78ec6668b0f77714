package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		env   map[string]string
		want  string
	}{
		{
			name:  "braced substitution",
			input: "password: ${DB_PASSWORD}",
			env:   map[string]string{"DB_PASSWORD": "secret123"},
			want:  "password: secret123",
		},
		{
			name:  "bare substitution",
			input: "password: $DB_PASSWORD",
			env:   map[string]string{"DB_PASSWORD": "secret123"},
			want:  "password: secret123",
		},
		{
			name:  "multiple substitutions in one line",
			input: "dsn: ${DB_HOST}:${DB_PORT}",
			env:   map[string]string{"DB_HOST": "localhost", "DB_PORT": "5432"},
			want:  "dsn: localhost:5432",
		},
		{
			name:  "missing variable expands to empty string",
			input: "token: ${MISSING_VAR}",
			env:   map[string]string{},
			want:  "token: ",
		},
		{
			name:  "no substitution when no variables",
			input: "static: value",
			env:   map[string]string{"UNUSED": "value"},
			want:  "static: value",
		},
		{
			name:  "nested YAML structure",
			input: "database:\n  host: ${DB_HOST}\n  port: ${DB_PORT}\n",
			env:   map[string]string{"DB_HOST": "localhost", "DB_PORT": "5432"},
			want:  "database:\n  host: localhost\n  port: 5432\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			result := ExpandEnv([]byte(tt.input))
			assert.Equal(t, tt.want, string(result))
		})
	}
}

func TestExpandEnvWithEmptyInput(t *testing.T) {
	result := ExpandEnv([]byte(""))
	assert.Equal(t, "", string(result))
}

func TestExpandEnvPreservesContentWithNoVariables(t *testing.T) {
	input := "key: value\nnested:\n  field: \"string value\"\n  number: 123\n"
	result := ExpandEnv([]byte(input))
	assert.Equal(t, input, string(result))
}
