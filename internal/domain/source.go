package domain

import (
	"fmt"
	"strings"
)

// Source names one of the two boards the assistant reads.
type Source string

const (
	SourceWorkOrders Source = "work_orders"
	SourceDeals      Source = "deals"
)

// AllSources lists every source in the order reports present them.
var AllSources = []Source{SourceWorkOrders, SourceDeals}

// Label returns the human board name used in prompts and caveats.
func (s Source) Label() string {
	switch s {
	case SourceWorkOrders:
		return "Work Orders"
	case SourceDeals:
		return "Deals"
	default:
		return string(s)
	}
}

func (s Source) Valid() bool {
	return s == SourceWorkOrders || s == SourceDeals
}

// ParseSource accepts the canonical names plus a few shorthand spellings
// ("wo", "work-orders", "deal").
func ParseSource(v string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "work_orders", "work-orders", "workorders", "wo":
		return SourceWorkOrders, nil
	case "deals", "deal":
		return SourceDeals, nil
	default:
		return "", fmt.Errorf("unknown source %q (want work_orders or deals)", v)
	}
}
