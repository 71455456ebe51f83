package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntEnv(t *testing.T) {
	assert.Equal(t, 8080, IntEnv("INTENV_TEST_UNSET", 8080))

	t.Setenv("INTENV_TEST_SET", "9000")
	assert.Equal(t, 9000, IntEnv("INTENV_TEST_SET", 8080))

	t.Setenv("INTENV_TEST_BAD", "not-a-number")
	assert.Equal(t, 8080, IntEnv("INTENV_TEST_BAD", 8080))
}
