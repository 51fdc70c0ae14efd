package report

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const (
	lakh  = 100000
	crore = 10000000
)

// FormatINR renders an amount in rupees using lakh (L) and crore (Cr)
// units from one lakh upward, and a rounded whole number below that.
func FormatINR(v float64) string {
	switch {
	case v >= crore:
		return "₹" + humanize.FormatFloat("#,###.##", v/crore) + " Cr"
	case v >= lakh:
		return "₹" + humanize.FormatFloat("#,###.##", v/lakh) + " L"
	default:
		return "₹" + humanize.FormatFloat("#,###.", v)
	}
}

// FormatOptionalINR renders "N/A" for a missing amount.
func FormatOptionalINR(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatINR(*v)
}

// NotAvailable stands in for a ratio or amount that cannot be computed.
const NotAvailable = "N/A"

// Percent renders part/whole as "NN.N%", or "N/A" when whole is not positive.
func Percent(part, whole float64) string {
	if whole <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", part/whole*100)
}
