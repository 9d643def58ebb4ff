package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/vestern/vestern/internal/domain"
)

// ListTransactionsQueryParams holds query parameters for GET /accounts/:account_number/transactions
type ListTransactionsQueryParams struct {
	Limit int `form:"limit"`
}

// ParseListTransactionsQuery parses query parameters, falling back to defaultLimit when unset
func ParseListTransactionsQuery(c *gin.Context, defaultLimit int) (*ListTransactionsQueryParams, error) {
	var params ListTransactionsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit == 0 {
		params.Limit = defaultLimit
	}

	return &params, nil
}

// Validate validates the query parameters
func (p *ListTransactionsQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > domain.MAX_TRANSACTIONS_LIMIT {
		return fmt.Errorf("limit must be between 1 and %d", domain.MAX_TRANSACTIONS_LIMIT)
	}
	return nil
}
