package utils

import (
	"fmt"
	"time"
)

// ElapsedTime formats the wall time since startTime for the run summary log
// line, dropping to milliseconds for runs too quick to read in seconds.
func ElapsedTime(startTime time.Time) string {
	elapsed := time.Since(startTime)
	if elapsed < 100*time.Millisecond {
		return fmt.Sprintf("%.2fms", float64(elapsed.Nanoseconds())/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", elapsed.Seconds())
}
