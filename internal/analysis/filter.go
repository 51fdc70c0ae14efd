package analysis

import (
	"strings"
	"time"

	"github.com/alexanderramin/bizpulse/internal/table"
)

// DateRange bounds are inclusive. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) contains(d time.Time) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// FilterBySector keeps rows whose sector cell contains the keyword,
// case-insensitively. Rows with an empty sector never match. Tables without
// a sector column come back unfiltered.
func FilterBySector(t *table.Table, sector string) *table.Table {
	col, ok := Resolve(t, RoleSector)
	keyword := strings.ToLower(strings.TrimSpace(sector))
	if !ok || keyword == "" {
		return t.Clone()
	}
	return t.Filter(func(r table.Row) bool {
		v := r[col]
		return v != "" && strings.Contains(strings.ToLower(v), keyword)
	})
}

// FilterByDateRange keeps rows whose date cell falls inside r. column may be
// empty to resolve the date role. Empty and unparseable dates never match.
// Without a date column the table comes back unfiltered.
func FilterByDateRange(t *table.Table, r DateRange, column string) *table.Table {
	if column == "" {
		var ok bool
		if column, ok = Resolve(t, RoleDate); !ok {
			return t.Clone()
		}
	}
	if !t.HasColumn(column) {
		return t.Clone()
	}
	return t.Filter(func(row table.Row) bool {
		d := table.ParseDate(row[column])
		return d.Valid() && r.contains(d.Value)
	})
}
