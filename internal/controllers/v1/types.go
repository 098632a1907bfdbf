package v1

import (
	"github.com/promissoria/backend/internal/types"
	ez_uuid "github.com/promissoria/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// QueryDateRange is an inclusive range of dates. Both bounds are optional.
type QueryDateRange struct {
	From  types.Date `form:"from" example:"2024-01-01"`  // First day of the range
	Until types.Date `form:"until" example:"2024-12-31"` // Last day of the range
}

// defaultLimit is the number of resources returned by list endpoints
// when no limit is set.
const defaultLimit = 50

// paginate returns the page of items for offset and limit. A negative
// limit returns all items starting at the offset.
func paginate[T any](items []T, offset uint, limit int) []T {
	if offset >= uint(len(items)) {
		return []T{}
	}

	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
