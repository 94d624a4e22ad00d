// Package timefmt renders elapsed-time measurements for display.
package timefmt

import (
	"fmt"
	"math"
)

// FormatSeconds renders an elapsed time given in seconds. Values under one
// second are shown as whole milliseconds (rounded half away from zero),
// everything else as seconds with two decimals. The boundary value 1 belongs
// to the seconds branch.
func FormatSeconds(secs float64) string {
	if secs < 1 {
		return fmt.Sprintf("%d ms", int64(math.Round(secs*1000)))
	}
	return fmt.Sprintf("%.2f s", secs)
}

// FormatSecondsPtr is the optional-value form of FormatSeconds: a nil input
// means no timing was recorded, and callers must not display anything.
func FormatSecondsPtr(secs *float64) *string {
	if secs == nil {
		return nil
	}
	s := FormatSeconds(*secs)
	return &s
}
