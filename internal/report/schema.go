package report

import (
	"os"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/table"
)

// Schema names the exact columns the production boards use. A name missing
// from a table falls back to the column resolver.
type Schema struct {
	WORevenue string
	WOBilled  string
	WOStatus  string
	WOSector  string

	DealValue  string
	DealStage  string
	DealStatus string
	DealSector string
}

func DefaultSchema() Schema {
	return Schema{
		WORevenue:  "Amount in Rupees (Excl of GST) (Masked)",
		WOBilled:   "Billed Value in Rupees (Excl of GST.) (Masked)",
		WOStatus:   "Execution Status",
		WOSector:   "Sector",
		DealValue:  "Masked Deal value",
		DealStage:  "Deal Stage",
		DealStatus: "Deal Status",
		DealSector: "Sector/service",
	}
}

// LoadSchema applies BIZPULSE_*_COLUMN overrides to the default schema.
func LoadSchema() Schema {
	s := DefaultSchema()
	overrides := []struct {
		env    string
		target *string
	}{
		{"BIZPULSE_WO_REVENUE_COLUMN", &s.WORevenue},
		{"BIZPULSE_WO_BILLED_COLUMN", &s.WOBilled},
		{"BIZPULSE_WO_STATUS_COLUMN", &s.WOStatus},
		{"BIZPULSE_WO_SECTOR_COLUMN", &s.WOSector},
		{"BIZPULSE_DEAL_VALUE_COLUMN", &s.DealValue},
		{"BIZPULSE_DEAL_STAGE_COLUMN", &s.DealStage},
		{"BIZPULSE_DEAL_STATUS_COLUMN", &s.DealStatus},
		{"BIZPULSE_DEAL_SECTOR_COLUMN", &s.DealSector},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.target = v
		}
	}
	return s
}

// workOrderColumns are the resolved columns of a work orders table; empty
// means unresolved.
type workOrderColumns struct {
	revenue, billed, status, sector string
}

func (s Schema) workOrders(t *table.Table) workOrderColumns {
	return workOrderColumns{
		revenue: resolve(t, s.WORevenue, analysis.RoleRevenue),
		billed:  resolve(t, s.WOBilled, analysis.RoleBilled),
		status:  resolve(t, s.WOStatus, analysis.RoleStatus),
		sector:  resolve(t, s.WOSector, analysis.RoleSector),
	}
}

type dealColumns struct {
	value, stage, status, sector string
}

func (s Schema) deals(t *table.Table) dealColumns {
	return dealColumns{
		value:  resolve(t, s.DealValue, analysis.RoleRevenue),
		stage:  resolve(t, s.DealStage, analysis.RoleStage),
		status: resolve(t, s.DealStatus, analysis.RoleStatus),
		sector: resolve(t, s.DealSector, analysis.RoleSector),
	}
}

func resolve(t *table.Table, preferred string, role analysis.Role) string {
	col, _ := analysis.ResolvePreferred(t, preferred, role)
	return col
}
