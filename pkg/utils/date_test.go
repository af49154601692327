package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-08-31"))
	assert.False(t, ValidDate("2025-8-31"))
	assert.False(t, ValidDate("31/08/2025"))
	assert.False(t, ValidDate(""))
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth("2025-08"))
	assert.False(t, ValidMonth("2025-8"))
	assert.False(t, ValidMonth("08-2025"))
}

func TestValidYear(t *testing.T) {
	assert.True(t, ValidYear("2025"))
	assert.False(t, ValidYear("25"))
	assert.False(t, ValidYear("agosto"))
}
