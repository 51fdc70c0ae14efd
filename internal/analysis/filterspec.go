package analysis

import (
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/table"
)

// FilterSpec combines the sources a question touches with an optional
// sector keyword and date window. Its methods return new values; a spec is
// never modified in place.
type FilterSpec struct {
	sources []domain.Source
	sector  string
	window  DateRange
	quarter *Quarter
}

// NewFilterSpec builds a spec over the given sources.
func NewFilterSpec(sources []domain.Source, sector string, window DateRange) FilterSpec {
	s := make([]domain.Source, len(sources))
	copy(s, sources)
	return FilterSpec{sources: s, sector: sector, window: window}
}

// WithQuarter returns a copy windowed to q.
func (f FilterSpec) WithQuarter(q Quarter) FilterSpec {
	f.sources = f.Sources()
	f.window = q.Bounds()
	f.quarter = &q
	return f
}

func (f FilterSpec) Sources() []domain.Source {
	out := make([]domain.Source, len(f.sources))
	copy(out, f.sources)
	return out
}

func (f FilterSpec) Affects(src domain.Source) bool {
	for _, s := range f.sources {
		if s == src {
			return true
		}
	}
	return false
}

func (f FilterSpec) Sector() string    { return f.sector }
func (f FilterSpec) Window() DateRange { return f.window }

func (f FilterSpec) Quarter() (Quarter, bool) {
	if f.quarter == nil {
		return Quarter{}, false
	}
	return *f.quarter, true
}

// Applied is the outcome of narrowing one source.
type Applied struct {
	Table *table.Table

	SectorApplied bool
	WindowApplied bool

	// WindowDropped is set when the date window matched no rows and the
	// pre-window rows were kept instead.
	WindowDropped bool
}

// Apply narrows t by sector, then by date window. A window that would leave
// the source empty is dropped for that source rather than discarding every
// row. Sources the spec does not affect come back unfiltered.
func (f FilterSpec) Apply(src domain.Source, t *table.Table) Applied {
	if !f.Affects(src) {
		return Applied{Table: t.Clone()}
	}

	out := Applied{Table: t}
	if f.sector != "" {
		out.Table = FilterBySector(out.Table, f.sector)
		out.SectorApplied = true
	}
	if !f.window.IsZero() {
		dated := FilterByDateRange(out.Table, f.window, "")
		if dated.Len() == 0 {
			out.WindowDropped = true
		} else {
			out.Table = dated
			out.WindowApplied = true
		}
	}
	if out.Table == t {
		out.Table = t.Clone()
	}
	return out
}
