package utils

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// ==================== ORDER NUMBER ====================

// GenerateOrderNumber returns ORD-YYYYMMDD-HHMMSS-NNNN. The random suffix keeps
// numbers unique for orders placed within the same second; the column is still
// UNIQUE so a collision fails the insert instead of duplicating.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s-%04d",
		now.Format("20060102"),
		now.Format("150405"),
		rand.IntN(10000),
	)
}

// ==================== QUERY PARAMS ====================

// ParseInt converts string to int, falling back to defaultValue for empty,
// malformed or non-positive input.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}
