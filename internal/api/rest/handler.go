package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vestern/vestern/internal/api/rest/dto"
	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/store"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetUser retrieves the profile of an account holder
	// GET /api/v1/accounts/:account_number/user
	GetUser(c *gin.Context)

	// GetPortfolio retrieves the positions held by an account
	// GET /api/v1/accounts/:account_number/portfolio
	GetPortfolio(c *gin.Context)

	// ListTransactions retrieves the latest trades of an account, newest first
	// GET /api/v1/accounts/:account_number/transactions?limit=<limit>
	ListTransactions(c *gin.Context)

	// GetWatchlist retrieves the symbols watched by an account
	// GET /api/v1/accounts/:account_number/watchlist
	GetWatchlist(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store             store.Store
	transactionsLimit int
}

// NewHandler creates a new REST API handler
func NewHandler(st store.Store, transactionsLimit int) Handler {
	if transactionsLimit <= 0 || transactionsLimit > domain.MAX_TRANSACTIONS_LIMIT {
		transactionsLimit = domain.MAX_TRANSACTIONS_LIMIT
	}
	return &handler{
		store:             st,
		transactionsLimit: transactionsLimit,
	}
}

// accountNumber reads and validates the :account_number path parameter.
// It responds with 400 and returns false when the value is malformed.
func accountNumber(c *gin.Context) (domain.AccountNumber, bool) {
	acct := domain.AccountNumber(c.Param("account_number"))
	if !acct.Valid() {
		respondBadRequest(c, "Invalid account number", acct.String())
		return "", false
	}
	return acct, true
}

func (h *handler) GetUser(c *gin.Context) {
	acct, ok := accountNumber(c)
	if !ok {
		return
	}

	user, err := h.store.GetUserByAccountNumber(c.Request.Context(), acct)
	if err != nil {
		respondDatabaseError(c, err, "Failed to retrieve user", zap.String("account_number", acct.String()))
		return
	}
	if user == nil {
		respondNotFound(c, "User not found")
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToDTO(user))
}

func (h *handler) GetPortfolio(c *gin.Context) {
	acct, ok := accountNumber(c)
	if !ok {
		return
	}

	positions, err := h.store.GetPortfolioByAccountNumber(c.Request.Context(), acct)
	if err != nil {
		respondDatabaseError(c, err, "Failed to retrieve portfolio", zap.String("account_number", acct.String()))
		return
	}

	c.JSON(http.StatusOK, dto.MapPortfolioToDTO(positions))
}

func (h *handler) ListTransactions(c *gin.Context) {
	acct, ok := accountNumber(c)
	if !ok {
		return
	}

	params, err := ParseListTransactionsQuery(c, h.transactionsLimit)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := params.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	txs, err := h.store.GetTransactionsByAccountNumber(c.Request.Context(), acct, params.Limit)
	if err != nil {
		respondDatabaseError(c, err, "Failed to retrieve transactions", zap.String("account_number", acct.String()))
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionsToDTO(txs))
}

func (h *handler) GetWatchlist(c *gin.Context) {
	acct, ok := accountNumber(c)
	if !ok {
		return
	}

	entries, err := h.store.GetWatchlistByAccountNumber(c.Request.Context(), acct)
	if err != nil {
		respondDatabaseError(c, err, "Failed to retrieve watchlist", zap.String("account_number", acct.String()))
		return
	}

	c.JSON(http.StatusOK, dto.MapWatchlistToDTO(entries))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "vestern-api",
	})
}
