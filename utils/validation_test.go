package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"11987654321", true},
		{"+55 (11) 98765-4321", true},
		{"11.9876.4321", true},
		{"0800123", false},
		{"1", false},
		{"abc", false},
		{"+1234567890123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.phone))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("joao@barbearia.com"))
	assert.False(t, ValidateEmail("João <joao@barbearia.com>"))
	assert.False(t, ValidateEmail("not-an-email"))
}
