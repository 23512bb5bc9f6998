package domain

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatPrice renders a price with en-US digit grouping and at most two
// fraction digits, matching what the dashboard displays.
func FormatPrice(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// FormatChange renders a percent change with an explicit sign, e.g. "+0.42%".
func FormatChange(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}
