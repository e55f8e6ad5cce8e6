package board_model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradientFor_Deterministic(t *testing.T) {
	id := "3f2c9a10-5b7d-4e7a-9c1d-8aa1b2c3d4e5"
	assert.Equal(t, GradientFor(id), GradientFor(id))
	assert.NotEmpty(t, GradientFor(id))
}

func TestGradientFor_PicksByCharCodes(t *testing.T) {
	// 'a' (97) + 'a' (97) = 194, 194 % 5 = 4
	assert.Equal(t, gradients[4], GradientFor("abca"))
	assert.Equal(t, gradients[0], GradientFor(""))
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, ValidPriority(p))
	}
	assert.False(t, ValidPriority("URGENT"))
	assert.False(t, ValidPriority("low"))
	assert.False(t, ValidPriority(""))
}
