package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("507f1f77bcf86cd799439011"))
	assert.False(t, ValidID("not-an-id"))
}
