package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorTagFromInt(t *testing.T) {
	assert.Equal(t, ColorTagNone, ColorTagFromInt(0))
	assert.Equal(t, ColorTagRed, ColorTagFromInt(1))
	assert.Equal(t, ColorTagPurple, ColorTagFromInt(7))

	// значения вне диапазона сворачиваются в None
	assert.Equal(t, ColorTagNone, ColorTagFromInt(-1))
	assert.Equal(t, ColorTagNone, ColorTagFromInt(8))
	assert.Equal(t, ColorTagNone, ColorTagFromInt(255))
}

func TestColorTag_Name(t *testing.T) {
	tests := []struct {
		tag  ColorTag
		want string
	}{
		{ColorTagNone, "None"},
		{ColorTagRed, "Red"},
		{ColorTagOrange, "Orange"},
		{ColorTagYellow, "Yellow"},
		{ColorTagGreen, "Green"},
		{ColorTagBlue, "Blue"},
		{ColorTagPink, "Pink"},
		{ColorTagPurple, "Purple"},
		{ColorTag(99), "None"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tag.Name())
	}
}
