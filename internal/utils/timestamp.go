package utils

import (
	"strconv"
	"time"
)

// TimestampMillis returns the current Unix time in milliseconds as a decimal
// string. Every Capture server request carries it as an anti-caching token.
func TimestampMillis() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
