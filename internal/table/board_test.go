package table

import (
	"testing"

	"github.com/alexanderramin/bizpulse/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFromBoard_MapsTitlesAndNormalizes(t *testing.T) {
	b := &board.Board{
		Name: "Work Orders",
		Columns: []board.Column{
			{ID: "status", Title: "Execution Status"},
			{ID: "sector", Title: " Sector "},
		},
		Items: []board.Item{
			{Name: " WO-1 ", ColumnValues: []board.ColumnValue{
				{ID: "status", Text: strPtr("  Completed ")},
				{ID: "sector", Text: nil},
			}},
			{Name: "WO-2", ColumnValues: []board.ColumnValue{
				{ID: "sector", Text: strPtr("Mining")},
				{ID: "extra_col", Text: strPtr("x")},
			}},
		},
	}

	tbl := FromBoard(b)

	assert.Equal(t, []string{ItemNameColumn, "Execution Status", "Sector", "extra_col"}, tbl.Columns())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "WO-1", tbl.Value(0, ItemNameColumn))
	assert.Equal(t, "Completed", tbl.Value(0, "Execution Status"))
	assert.Equal(t, "", tbl.Value(0, "Sector"))
	assert.Equal(t, "", tbl.Value(0, "extra_col"))
	assert.Equal(t, "", tbl.Value(1, "Execution Status"))
	assert.Equal(t, "Mining", tbl.Value(1, "Sector"))
}

func TestFromBoard_EmptyBoard(t *testing.T) {
	tbl := FromBoard(&board.Board{Columns: []board.Column{{ID: "a", Title: "A"}}})
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{ItemNameColumn, "A"}, tbl.Columns())
}
