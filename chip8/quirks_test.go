package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParsePlatform(t *testing.T) {
	platform, err := ParsePlatform("chip8")
	assert.NoError(t, err)
	assert.Equal(t, PlatformChip8, platform)

	platform, err = ParsePlatform("super")
	assert.NoError(t, err)
	assert.Equal(t, PlatformSuperChip, platform)

	_, err = ParsePlatform("gameboy")
	assert.Error(t, err)
}

func TestQuirksFor(t *testing.T) {
	base := QuirksFor(PlatformChip8)
	assert.True(t, base.ResetFlag)
	assert.True(t, base.IncrementI)
	assert.False(t, base.ShiftInPlace)
	assert.False(t, base.JumpPlusX)

	super := QuirksFor(PlatformSuperChip)
	assert.False(t, super.ResetFlag)
	assert.False(t, super.IncrementI)
	assert.True(t, super.ShiftInPlace)
	assert.True(t, super.JumpPlusX)
}
