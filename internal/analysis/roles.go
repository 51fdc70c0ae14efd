// Package analysis resolves semantic columns, narrows tables and computes
// the aggregate metrics answers are grounded on.
package analysis

import (
	"strings"

	"github.com/alexanderramin/bizpulse/internal/table"
)

// Role is a semantic column purpose matched against column names.
type Role struct {
	Name     string
	Keywords []string
}

var (
	RoleSector  = Role{Name: "sector", Keywords: []string{"sector"}}
	RoleStatus  = Role{Name: "status", Keywords: []string{"status", "stage", "state"}}
	RoleDate    = Role{Name: "date", Keywords: []string{"date"}}
	RoleRevenue = Role{Name: "revenue", Keywords: []string{"value", "amount", "revenue", "total", "price"}}

	RoleStage  = Role{Name: "stage", Keywords: []string{"stage"}}
	RoleBilled = Role{Name: "billed", Keywords: []string{"billed"}}

	// RoleDateLike is the broader heuristic used when normalizing dates.
	RoleDateLike = Role{Name: "date_like", Keywords: []string{"date", "start", "end", "due", "created"}}

	// RoleNumeric flags columns worth reading as numbers in summaries.
	RoleNumeric = Role{Name: "numeric", Keywords: []string{"amount", "value", "price", "cost", "revenue", "total", "quantity", "area", "ha"}}
)

// BoardRoles are the roles reported for every board, in display order.
var BoardRoles = []Role{RoleSector, RoleStatus, RoleStage, RoleDate, RoleRevenue, RoleBilled}

// RoleByName looks up one of BoardRoles.
func RoleByName(name string) (Role, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range BoardRoles {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}

// ResolveRoles maps each of BoardRoles to its column on t; unresolved roles
// are absent.
func ResolveRoles(t *table.Table) map[string]string {
	out := map[string]string{}
	for _, r := range BoardRoles {
		if col, ok := Resolve(t, r); ok {
			out[r.Name] = col
		}
	}
	return out
}

func (r Role) matches(column string) bool {
	lower := strings.ToLower(column)
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Resolve returns the first column, in declared order, whose name contains
// any of the role's keywords. Nothing is cached: tables differ per source.
func Resolve(t *table.Table, role Role) (string, bool) {
	for _, c := range t.Columns() {
		if role.matches(c) {
			return c, true
		}
	}
	return "", false
}

// ResolveAll returns every matching column in declared order.
func ResolveAll(t *table.Table, role Role) []string {
	var out []string
	for _, c := range t.Columns() {
		if role.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// ResolvePreferred returns preferred when the table has that exact column,
// otherwise falls back to Resolve.
func ResolvePreferred(t *table.Table, preferred string, role Role) (string, bool) {
	if preferred != "" && t.HasColumn(preferred) {
		return preferred, true
	}
	return Resolve(t, role)
}

// NumericColumns lists the columns whose names suggest numbers.
func NumericColumns(t *table.Table) []string {
	return ResolveAll(t, RoleNumeric)
}
