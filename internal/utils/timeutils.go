package utils

import (
	"fmt"
	"time"
)

// MonthName returns the English name for a 1-12 month number.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("month-%d", month)
	}
	return time.Month(month).String()
}
