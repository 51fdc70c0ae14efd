package table

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in    string
		state CellState
		want  float64
	}{
		{"", CellEmpty, 0},
		{"   ", CellEmpty, 0},
		{"1250000", CellValid, 1250000},
		{"₹12,34,567.50", CellValid, 1234567.5},
		{"$ 1,000", CellValid, 1000},
		{"€3.5", CellValid, 3.5},
		{"£ 20", CellValid, 20},
		{"-45.25", CellValid, -45.25},
		{"₹", CellInvalid, 0},
		{"TBD", CellInvalid, 0},
		{"12 lakh", CellInvalid, 0},
		{"1.5e3", CellValid, 1500},
		{"1e400", CellInvalid, 0},
		{"-1e400", CellInvalid, 0},
		{"1e50000000", CellInvalid, 0},
		{"1e-50000000", CellInvalid, 0},
		{"1" + strings.Repeat("0", 400), CellInvalid, 0},
		{"123456789012345678901234567890", CellValid, 1.2345678901234568e29},
		{"1234567890123456789012345678901", CellInvalid, 0},
	}
	for _, tc := range cases {
		n := ParseNumber(tc.in)
		assert.Equal(t, tc.state, n.State, "input %q", tc.in)
		if tc.state == CellValid {
			assert.InDelta(t, tc.want, n.Float64(), 1e-9, "input %q", tc.in)
		}
	}
}

func TestParseNumber_ValidValuesAreFinite(t *testing.T) {
	for _, in := range []string{"1e29", "-1e29", "1e-30", "999999999999999999999999999999.99"} {
		n := ParseNumber(in)
		if assert.True(t, n.Valid(), "input %q", in) {
			f := n.Float64()
			assert.False(t, math.IsInf(f, 0) || math.IsNaN(f), "input %q", in)
		}
	}
}

func TestParseDate_Formats(t *testing.T) {
	want := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-02-07",
		"2026-2-7",
		"07-02-2026",
		"02/07/2026",
		"2026/02/07",
		"7 Feb 2026",
		"February 7, 2026",
		"2026-02-07 10:30",
	} {
		d := ParseDate(in)
		if assert.Equal(t, CellValid, d.State, "input %q", in) {
			assert.Equal(t, want, d.Value, "input %q", in)
		}
	}
}

func TestParseDate_DayFirstWhenMonthImpossible(t *testing.T) {
	d := ParseDate("25/12/2025")
	assert.True(t, d.Valid())
	assert.Equal(t, time.December, d.Value.Month())
	assert.Equal(t, 25, d.Value.Day())
}

func TestParseDate_EmptyAndInvalidAreDistinct(t *testing.T) {
	assert.Equal(t, CellEmpty, ParseDate("").State)
	assert.Equal(t, CellInvalid, ParseDate("next week").State)
	assert.Equal(t, "unparseable", CellInvalid.String())
}

func TestNormalizeDates(t *testing.T) {
	src := New([]string{"Start Date", "Note"},
		Row{"Start Date": "7 Feb 2026", "Note": "7 Feb 2026"},
		Row{"Start Date": "soon"},
	)

	out := NormalizeDates(src, []string{"Start Date", "Missing"})

	assert.Equal(t, "2026-02-07", out.Value(0, "Start Date"))
	assert.Equal(t, "7 Feb 2026", out.Value(0, "Note"))
	assert.Equal(t, "soon", out.Value(1, "Start Date"))
	assert.Equal(t, "7 Feb 2026", src.Value(0, "Start Date"))
}
