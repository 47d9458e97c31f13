package persistence

import (
	"strings"

	"github.com/jaysam/backend/internal/domain/shared"
)

// orderableColumns whitelists sort columns to keep user input out of
// the ORDER BY clause.
var orderableColumns = map[string]bool{
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"price_per_unit":    true,
	"quantity_in_stock": true,
	"order_number":      true,
	"total_amount":      true,
	"status":            true,
	"email":             true,
}

// orderClause builds a safe ORDER BY clause from the filter
func orderClause(filter shared.Filter) string {
	column := filter.OrderBy
	if !orderableColumns[column] {
		column = "created_at"
	}

	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}

	return column + " " + dir
}
