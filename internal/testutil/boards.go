package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/bizpulse/internal/board"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/table"
)

// Column names used by the fixture boards; they match the production boards.
const (
	WOSector   = "Sector"
	WOStatus   = "Execution Status"
	WODate     = "Probable Start Date"
	WORevenue  = "Amount in Rupees (Excl of GST) (Masked)"
	WOBilled   = "Billed Value in Rupees (Excl of GST.) (Masked)"
	WOCollect  = "Collected Amount in Rupees (Incl of GST.) (Masked)"
	DealStatus = "Deal Status"
	DealValue  = "Masked Deal value"
	DealStage  = "Deal Stage"
	DealSector = "Sector/service"
	DealDate   = "Created Date"
	DealProb   = "Closure Probability"
)

// Board IDs the fixture fetcher answers to.
const (
	WorkOrdersBoardID = "1001"
	DealsBoardID      = "2002"
)

// BoardIDs maps each source to its fixture board.
func BoardIDs() map[domain.Source]string {
	return map[domain.Source]string{
		domain.SourceWorkOrders: WorkOrdersBoardID,
		domain.SourceDeals:      DealsBoardID,
	}
}

// WorkOrdersBoard has six work orders: four with a parseable amount
// totalling 20,00,000 and billed values totalling 13,50,000; three dated
// in Q1 2026; sectors Mining, "Renewables - Solar", Renewables, Powerline,
// Urban and one blank.
func WorkOrdersBoard() *board.Board {
	return buildBoard(WorkOrdersBoardID, "Work Orders",
		[]string{WOSector, WOStatus, WODate, WORevenue, WOBilled, WOCollect},
		[][]string{
			{"WO-001", "Mining", "Completed", "2026-01-15", "1000000", "1000000", "800000"},
			{"WO-002", "Renewables - Solar", "Ongoing", "2026-02-10", "500000", "200000", ""},
			{"WO-003", "Renewables", "Executed until current month", "2025-11-20", "₹3,00,000", "100000", ""},
			{"WO-004", "Powerline", "Completed", "2026-04-05", "", "", ""},
			{"WO-005", "", "Not Started", "TBD", "abc", "", ""},
			{"WO-006", "Urban", "Ongoing", "2026-03-31", "200000", "50000", "50000"},
		})
}

// DealsBoard has seven deals: three with a value totalling 50,00,000 and
// four without a usable value; statuses Open x3, Won x2, Lost x1 and one
// blank.
func DealsBoard() *board.Board {
	return buildBoard(DealsBoardID, "Deals",
		[]string{DealStatus, DealValue, DealStage, DealSector, DealDate, DealProb},
		[][]string{
			{"D-001", "Open", "2500000", "E. Proposal/Commercials Sent", "Mining", "2026-01-05", "High"},
			{"D-002", "Won", "1500000", "H. Work Order Received", "Renewables", "2025-12-15", ""},
			{"D-003", "Lost", "", "L. Project Lost", "Renewables", "2026-02-20", ""},
			{"D-004", "Open", "", "B. Sales Qualified Leads", "Powerline", "2026-03-01", "Low"},
			{"D-005", "Won", "N/A", "H. Work Order Received", "Mining", "2025-10-10", ""},
			{"D-006", "Open", "1000000", "E. Proposal/Commercials Sent", "Mining", "2026-05-02", "Medium"},
			{"D-007", "", "", "A. Lead Generated", "", "", ""},
		})
}

// WorkOrdersTable is WorkOrdersBoard converted to a table.
func WorkOrdersTable() *table.Table { return table.FromBoard(WorkOrdersBoard()) }

// DealsTable is DealsBoard converted to a table.
func DealsTable() *table.Table { return table.FromBoard(DealsBoard()) }

func buildBoard(id, name string, titles []string, rows [][]string) *board.Board {
	b := &board.Board{ID: id, Name: name}
	for i, title := range titles {
		b.Columns = append(b.Columns, board.Column{ID: fmt.Sprintf("col_%d", i), Title: title, Type: "text"})
	}
	for _, r := range rows {
		item := board.Item{ID: r[0], Name: r[0]}
		for i, text := range r[1:] {
			text := text
			item.ColumnValues = append(item.ColumnValues, board.ColumnValue{ID: fmt.Sprintf("col_%d", i), Text: &text})
		}
		b.Items = append(b.Items, item)
	}
	return b
}

// FakeFetcher serves fixture boards and counts fetches per board.
type FakeFetcher struct {
	mu     sync.Mutex
	Boards map[string]*board.Board
	Err    error
	calls  map[string]int
}

// NewFakeFetcher serves the work orders and deals fixtures.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		Boards: map[string]*board.Board{
			WorkOrdersBoardID: WorkOrdersBoard(),
			DealsBoardID:      DealsBoard(),
		},
		calls: map[string]int{},
	}
}

func (f *FakeFetcher) FetchBoard(_ context.Context, boardID string) (*board.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[boardID]++
	if f.Err != nil {
		return nil, f.Err
	}
	b, ok := f.Boards[boardID]
	if !ok {
		return nil, fmt.Errorf("%w: board %s not found", board.ErrIngestion, boardID)
	}
	return b, nil
}

// Calls returns how many times boardID was fetched.
func (f *FakeFetcher) Calls(boardID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[boardID]
}

// SetErr makes every following fetch fail with err (nil to recover).
func (f *FakeFetcher) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Err = err
}
