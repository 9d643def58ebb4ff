package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/store/schema"
)

// UserResponse is the public profile of an account holder
type UserResponse struct {
	ID            uint64          `json:"id"`
	AccountNumber string          `json:"account_number"`
	Email         string          `json:"email"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	LastLogin     *time.Time      `json:"last_login"`
}

// PositionResponse is one portfolio holding
type PositionResponse struct {
	ID            uint64          `json:"id"`
	AccountNumber string          `json:"account_number"`
	StockSymbol   string          `json:"stock_symbol"`
	Shares        decimal.Decimal `json:"shares"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	LastUpdated   time.Time       `json:"last_updated"`
}

// TransactionResponse is one trade
type TransactionResponse struct {
	TransactionID     uint64                 `json:"transaction_id"`
	TransactionNumber *string                `json:"transaction_number"`
	AccountNumber     string                 `json:"account_number"`
	TransactionType   domain.TransactionType `json:"transaction_type"`
	StockSymbol       string                 `json:"stock_symbol"`
	Shares            decimal.Decimal        `json:"shares"`
	PricePerShare     decimal.Decimal        `json:"price_per_share"`
	TotalAmount       decimal.Decimal        `json:"total_amount"`
	TransactionDate   time.Time              `json:"transaction_date"`
	Status            string                 `json:"status"`
}

// WatchlistEntryResponse is one watched symbol
type WatchlistEntryResponse struct {
	ID            uint64    `json:"id"`
	AccountNumber string    `json:"account_number"`
	StockSymbol   string    `json:"stock_symbol"`
	AddedDate     time.Time `json:"added_date"`
}

// ListResponse wraps a collection
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// MapUserToDTO maps a user row; the password hash is dropped
func MapUserToDTO(u *schema.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		AccountNumber: u.AccountNumber,
		Email:         u.Email,
		Balance:       u.Balance,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
	}
}

func MapPortfolioToDTO(positions []schema.PortfolioPosition) ListResponse[PositionResponse] {
	items := make([]PositionResponse, 0, len(positions))
	for _, p := range positions {
		items = append(items, PositionResponse{
			ID:            p.ID,
			AccountNumber: p.AccountNumber,
			StockSymbol:   p.StockSymbol,
			Shares:        p.Shares,
			AveragePrice:  p.AveragePrice,
			LastUpdated:   p.LastUpdated,
		})
	}
	return ListResponse[PositionResponse]{Items: items, Total: len(items)}
}

func MapTransactionsToDTO(txs []schema.Transaction) ListResponse[TransactionResponse] {
	items := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		items = append(items, TransactionResponse{
			TransactionID:     t.TransactionID,
			TransactionNumber: t.TransactionNumber,
			AccountNumber:     t.AccountNumber,
			TransactionType:   t.TransactionType,
			StockSymbol:       t.StockSymbol,
			Shares:            t.Shares,
			PricePerShare:     t.PricePerShare,
			TotalAmount:       t.TotalAmount,
			TransactionDate:   t.TransactionDate,
			Status:            t.Status,
		})
	}
	return ListResponse[TransactionResponse]{Items: items, Total: len(items)}
}

func MapWatchlistToDTO(entries []schema.WatchlistEntry) ListResponse[WatchlistEntryResponse] {
	items := make([]WatchlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, WatchlistEntryResponse{
			ID:            e.ID,
			AccountNumber: e.AccountNumber,
			StockSymbol:   e.StockSymbol,
			AddedDate:     e.AddedDate,
		})
	}
	return ListResponse[WatchlistEntryResponse]{Items: items, Total: len(items)}
}
