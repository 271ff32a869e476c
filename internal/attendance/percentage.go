package attendance

import (
	"fmt"
	"strconv"
)

// Percentage formats present/total as a percentage with two decimals.
// A zero total degrades to "0.00" instead of failing; both the section
// summary and the per-student detail go through this one function so the
// two paths can never report different values.
func Percentage(present, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(present)/float64(total)*100)
}

// BelowThreshold reports whether a student's percentage falls under the
// shortage threshold (typically 75).
func BelowThreshold(present, total int, threshold float64) bool {
	pct, err := strconv.ParseFloat(Percentage(present, total), 64)
	if err != nil {
		return false
	}
	return pct < threshold
}
