// Package report assembles the structured payloads answers are grounded on:
// an ad-hoc analysis for a single question and the fixed-shape leadership
// update.
package report

import (
	"context"
	"time"

	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/table"
)

// Tables is the read side of the record store.
type Tables interface {
	Get(ctx context.Context, src domain.Source, force bool) (*table.Table, error)
}

// Assembler reads tables on demand and never caches them itself.
type Assembler struct {
	tables Tables
	schema Schema
	now    func() time.Time
}

// NewAssembler builds an assembler. now supplies the report date; nil uses
// the wall clock.
func NewAssembler(tables Tables, schema Schema, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{tables: tables, schema: schema, now: now}
}

func (a *Assembler) Schema() Schema { return a.schema }
