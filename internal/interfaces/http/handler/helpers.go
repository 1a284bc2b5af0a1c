package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/webshop/backend/internal/domain/shared"
	"github.com/webshop/backend/internal/interfaces/http/dto"
)

// bindListRequest parses common list query parameters into a filter
func bindListRequest(c *gin.Context) (shared.Filter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	return filter, nil
}
