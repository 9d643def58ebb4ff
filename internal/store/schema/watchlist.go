package schema

import "time"

// WatchlistEntry represents the watchlist table
type WatchlistEntry struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	AccountNumber string    `gorm:"column:account_number;not null;type:text;index"`
	StockSymbol   string    `gorm:"column:stock_symbol;not null;type:text"`
	AddedDate     time.Time `gorm:"column:added_date;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the WatchlistEntry model
func (WatchlistEntry) TableName() string {
	return "watchlist"
}
