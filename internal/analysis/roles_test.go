package analysis

import (
	"testing"

	"github.com/alexanderramin/bizpulse/internal/table"
	"github.com/alexanderramin/bizpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_WorkOrders(t *testing.T) {
	wo := testutil.WorkOrdersTable()

	cases := map[string]string{
		RoleSector.Name:  testutil.WOSector,
		RoleStatus.Name:  testutil.WOStatus,
		RoleDate.Name:    testutil.WODate,
		RoleRevenue.Name: testutil.WORevenue,
		RoleBilled.Name:  testutil.WOBilled,
	}
	for _, role := range []Role{RoleSector, RoleStatus, RoleDate, RoleRevenue, RoleBilled} {
		col, ok := Resolve(wo, role)
		assert.True(t, ok, role.Name)
		assert.Equal(t, cases[role.Name], col, role.Name)
	}
}

func TestResolve_ColumnOrderWinsOverKeywordOrder(t *testing.T) {
	tbl := table.New([]string{"Deal Stage", "Deal Status"})
	col, ok := Resolve(tbl, RoleStatus)
	assert.True(t, ok)
	assert.Equal(t, "Deal Stage", col)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	tbl := table.New([]string{"Item Name", "SECTOR / Service"})
	col, ok := Resolve(tbl, RoleSector)
	assert.True(t, ok)
	assert.Equal(t, "SECTOR / Service", col)
}

func TestResolve_NoMatch(t *testing.T) {
	_, ok := Resolve(table.New([]string{"Item Name", "Owner"}), RoleRevenue)
	assert.False(t, ok)
}

func TestResolvePreferred(t *testing.T) {
	deals := testutil.DealsTable()

	col, ok := ResolvePreferred(deals, testutil.DealStage, RoleStatus)
	assert.True(t, ok)
	assert.Equal(t, testutil.DealStage, col)

	col, ok = ResolvePreferred(deals, "Renamed Stage", RoleStage)
	assert.True(t, ok)
	assert.Equal(t, testutil.DealStage, col)
}

func TestResolveAll_DateLike(t *testing.T) {
	tbl := table.New([]string{"Item Name", "Start", "Due On", "Owner", "Created Date"})
	assert.Equal(t, []string{"Start", "Due On", "Created Date"}, ResolveAll(tbl, RoleDateLike))
}

func TestNumericColumns(t *testing.T) {
	cols := NumericColumns(testutil.WorkOrdersTable())
	assert.Equal(t, []string{testutil.WORevenue, testutil.WOBilled, testutil.WOCollect}, cols)
}

func TestRoleByName(t *testing.T) {
	r, ok := RoleByName(" Sector ")
	require.True(t, ok)
	assert.Equal(t, RoleSector, r)

	_, ok = RoleByName("numeric")
	assert.False(t, ok)
}

func TestResolveRoles_Deals(t *testing.T) {
	got := ResolveRoles(testutil.DealsTable())

	assert.Equal(t, testutil.DealSector, got["sector"])
	assert.Equal(t, testutil.DealStatus, got["status"])
	assert.Equal(t, testutil.DealStage, got["stage"])
	assert.Equal(t, testutil.DealDate, got["date"])
	assert.Equal(t, testutil.DealValue, got["revenue"])
	_, ok := got["billed"]
	assert.False(t, ok)
}
