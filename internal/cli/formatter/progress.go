package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCoverage draws how complete a column is, e.g. [████░░░░]  50%,
// colored by the share that is missing.
func RenderCoverage(filledPct float64, width int) string {
	filledPct = min(max(filledPct, 0), 100)
	width = max(width, 2)

	filled := int(filledPct / 100 * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", MissingStyle(100-filledPct).Render(bar), filledPct)
}
