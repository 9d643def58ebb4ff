package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioPosition represents the portfolio table - shares of one symbol held by an account
type PortfolioPosition struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	AccountNumber string          `gorm:"column:account_number;not null;type:text;index"`
	StockSymbol   string          `gorm:"column:stock_symbol;not null;type:text"`
	Shares        decimal.Decimal `gorm:"column:shares;not null;type:numeric(18,6)"`
	AveragePrice  decimal.Decimal `gorm:"column:average_price;not null;type:numeric(18,4)"`
	LastUpdated   time.Time       `gorm:"column:last_updated;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the PortfolioPosition model
func (PortfolioPosition) TableName() string {
	return "portfolio"
}
