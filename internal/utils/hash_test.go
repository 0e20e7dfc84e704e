package utils

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA1Hex(t *testing.T) {
	// известные дайджесты
	assert.Equal(t, "e5e9fa1ba31ecd1ae84f75caaa474f3a663f05f4", SHA1Hex("secret"))
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", SHA1Hex(""))
}

func TestTimestampMillis(t *testing.T) {
	before := time.Now().UnixMilli()
	got, err := strconv.ParseInt(TimestampMillis(), 10, 64)
	after := time.Now().UnixMilli()

	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}
