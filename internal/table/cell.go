package table

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// CellState separates "no value" from "a value that could not be read".
type CellState int

const (
	CellEmpty CellState = iota
	CellInvalid
	CellValid
)

func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellInvalid:
		return "unparseable"
	default:
		return "valid"
	}
}

// Number is a cell read as a decimal amount.
type Number struct {
	State CellState
	Value decimal.Decimal
}

func (n Number) Valid() bool { return n.State == CellValid }

func (n Number) Float64() float64 {
	f, _ := n.Value.Float64()
	return f
}

// ParseNumber reads an amount such as "₹ 12,34,567.50". Currency symbols,
// thousands separators and whitespace are stripped before parsing.
func ParseNumber(text string) Number {
	text = strings.TrimSpace(text)
	if text == "" {
		return Number{State: CellEmpty}
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '₹', r == '$', r == '€', r == '£', r == ',':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, text)
	if cleaned == "" {
		return Number{State: CellInvalid}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || !inRange(d) {
		return Number{State: CellInvalid}
	}
	return Number{State: CellValid, Value: d}
}

// maxDigits bounds both the exponent and the integer digits a cell may
// carry. Board amounts never need more, and values outside it either
// overflow float64 or make sums rescale to huge integers.
const maxDigits = 30

func inRange(d decimal.Decimal) bool {
	e := d.Exponent()
	if e > maxDigits || e < -maxDigits {
		return false
	}
	if d.NumDigits()+int(e) > maxDigits {
		return false
	}
	f, _ := d.Float64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Date is a cell read as a calendar day (UTC midnight).
type Date struct {
	State CellState
	Value time.Time
}

func (d Date) Valid() bool { return d.State == CellValid }

// dateLayouts are tried in order; the first successful parse wins, so
// "03/04/2026" reads month-first.
var dateLayouts = []string{
	"2006-1-2",
	"2-1-2006",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
	"2 Jan 2006",
	"January 2, 2006",
	"2006-1-2 15:04",
	"2006-1-2 15:04:05",
	time.RFC3339,
}

// ParseDate reads a date cell using the board export formats.
func ParseDate(text string) Date {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{State: CellEmpty}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			y, m, d := ts.Date()
			return Date{State: CellValid, Value: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
		}
	}
	return Date{State: CellInvalid}
}

// ISODate formats a day as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// NormalizeDates returns a copy of t with every parseable cell of the given
// columns rewritten as YYYY-MM-DD. Unparseable cells keep their text.
func NormalizeDates(t *Table, columns []string) *Table {
	out := t.Clone()
	for _, col := range columns {
		if !out.HasColumn(col) {
			continue
		}
		for i := 0; i < out.Len(); i++ {
			if d := ParseDate(out.Value(i, col)); d.Valid() {
				out.Set(i, col, ISODate(d.Value))
			}
		}
	}
	return out
}
