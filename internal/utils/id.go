package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID returns prefix + "_" + a UUIDv7. Version 7 ids embed a millisecond
// timestamp and random bits, so ids sort by creation time and two ids minted
// in the same millisecond still differ.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4 first
		// and to the clock as a last resort.
		if v4, err4 := uuid.NewRandom(); err4 == nil {
			return prefix + "_" + v4.String()
		}
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	}
	return prefix + "_" + id.String()
}
