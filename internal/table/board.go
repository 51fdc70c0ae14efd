package table

import (
	"strings"

	"github.com/alexanderramin/bizpulse/internal/board"
)

// FromBoard converts a fetched board into a Table. Column IDs are replaced
// by their human titles, every value is trimmed and null cells become empty
// strings. Values for column IDs the board did not declare keep the raw ID
// as their column name.
func FromBoard(b *board.Board) *Table {
	titles := make(map[string]string, len(b.Columns))
	columns := []string{ItemNameColumn}
	seen := map[string]bool{ItemNameColumn: true}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			columns = append(columns, name)
		}
	}

	for _, c := range b.Columns {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = c.ID
		}
		titles[c.ID] = title
		add(title)
	}

	rows := make([]Row, 0, len(b.Items))
	for _, item := range b.Items {
		row := Row{ItemNameColumn: strings.TrimSpace(item.Name)}
		for _, cv := range item.ColumnValues {
			name, ok := titles[cv.ID]
			if !ok {
				name = cv.ID
				add(name)
			}
			if cv.Text != nil {
				row[name] = strings.TrimSpace(*cv.Text)
			}
		}
		rows = append(rows, row)
	}

	return New(columns, rows...)
}
