package analysis

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/alexanderramin/bizpulse/internal/table"
)

// LabelCount is one category of a breakdown.
type LabelCount struct {
	Label string
	Count int
}

// Breakdown is an ordered category count: highest count first, ties in
// first-seen order.
type Breakdown []LabelCount

// ValueCounts counts each distinct non-empty value of column. Empty cells
// are unknown, not a category.
func ValueCounts(t *table.Table, column string) Breakdown {
	index := map[string]int{}
	var out Breakdown
	for _, v := range t.Values(column) {
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, LabelCount{Label: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Get returns the count for label, zero when absent.
func (b Breakdown) Get(label string) int {
	for _, lc := range b {
		if lc.Label == label {
			return lc.Count
		}
	}
	return 0
}

// Total sums every category.
func (b Breakdown) Total() int {
	n := 0
	for _, lc := range b {
		n += lc.Count
	}
	return n
}

// Top returns the most frequent label.
func (b Breakdown) Top() (string, bool) {
	if len(b) == 0 {
		return "", false
	}
	return b[0].Label, true
}

// MarshalJSON writes the breakdown as an object, keeping its order.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lc := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lc.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(lc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
