package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SortParams holds the sort parameters of a listing request.
type SortParams struct {
	By   string
	Desc bool
}

// GetSortParams extracts sortBy and sortOrder from the query string.
// Any sortOrder other than "desc" sorts ascending.
func GetSortParams(c *gin.Context) SortParams {
	return SortParams{
		By:   strings.TrimSpace(c.Query("sortBy")),
		Desc: strings.EqualFold(c.Query("sortOrder"), "desc"),
	}
}
