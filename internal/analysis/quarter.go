package analysis

import (
	"fmt"
	"time"
)

// Quarter is a fixed three-month calendar bucket.
type Quarter struct {
	Year   int
	Number int
}

func (q Quarter) String() string {
	return fmt.Sprintf("Q%d %d", q.Number, q.Year)
}

// QuarterOf returns the quarter containing t.
func QuarterOf(t time.Time) Quarter {
	return Quarter{Year: t.Year(), Number: (int(t.Month())-1)/3 + 1}
}

// Bounds returns the first and last day of the quarter.
func (q Quarter) Bounds() DateRange {
	start := time.Date(q.Year, time.Month((q.Number-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 3, -1)}
}

// QuarterBounds returns the inclusive day range of quarter (1-4) in year.
// A zero quarter means the quarter containing now.
func QuarterBounds(year, quarter int, now time.Time) (DateRange, error) {
	if quarter == 0 {
		quarter = QuarterOf(now).Number
	}
	if quarter < 1 || quarter > 4 {
		return DateRange{}, fmt.Errorf("quarter must be between 1 and 4, got %d", quarter)
	}
	return Quarter{Year: year, Number: quarter}.Bounds(), nil
}
