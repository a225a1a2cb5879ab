package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailSyntaxValid(t *testing.T) {
	valid := []string{
		"juan@example.com",
		"juan.gomez+turnos@example.com.ar",
		"j@x.co",
	}
	for _, email := range valid {
		assert.True(t, IsEmailSyntaxValid(email), email)
	}

	invalid := []string{
		"",
		"juan",
		"juan@",
		"@example.com",
		"juan@example",
		"juan @example.com",
		"juan@exam ple.com",
	}
	for _, email := range invalid {
		assert.False(t, IsEmailSyntaxValid(email), email)
	}
}

// IsEmailDomainValid hace lookups de DNS reales; se cubre solo el camino
// que no sale a la red.
func TestIsEmailDomainValidRechazaSintaxisInvalida(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-es-un-mail"))
	assert.False(t, IsEmailDomainValid(""))
}
