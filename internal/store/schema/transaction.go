package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vestern/vestern/internal/domain"
)

// Transaction represents the transactions table - one trade placed by an account
type Transaction struct {
	// TransactionID is the creation-ordered primary key
	TransactionID uint64 `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	// TransactionNumber is the random token assigned after insert
	TransactionNumber *string                `gorm:"column:transaction_number;type:text"`
	AccountNumber     string                 `gorm:"column:account_number;not null;type:text;index"`
	TransactionType   domain.TransactionType `gorm:"column:transaction_type;not null;type:text"`
	StockSymbol       string                 `gorm:"column:stock_symbol;not null;type:text"`
	Shares            decimal.Decimal        `gorm:"column:shares;not null;type:numeric(18,6)"`
	PricePerShare     decimal.Decimal        `gorm:"column:price_per_share;not null;type:numeric(18,4)"`
	TotalAmount       decimal.Decimal        `gorm:"column:total_amount;not null;type:numeric(20,4)"`
	TransactionDate   time.Time              `gorm:"column:transaction_date;not null;default:now();type:timestamptz"`
	Status            string                 `gorm:"column:status;not null;type:text"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
