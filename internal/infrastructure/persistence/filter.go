package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/webshop/backend/internal/domain/shared"
)

// allowedOrderColumns guards ORDER BY input against SQL injection
var allowedOrderColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"code":         true,
	"price":        true,
	"stock":        true,
	"category":     true,
	"order_date":   true,
	"order_number": true,
	"total_amount": true,
	"status":       true,
	"email":        true,
}

// applyFilter applies ordering and pagination from the filter to the query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyOrdering(query, filter)

	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyOrdering applies only the ordering from the filter
func applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if orderBy == "" || !allowedOrderColumns[orderBy] {
		orderBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	return query.Order(fmt.Sprintf("%s %s", orderBy, dir))
}
