package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the users table
type User struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AccountNumber string `gorm:"column:account_number;not null;uniqueIndex;type:text"`
	Email         string `gorm:"column:email;not null;uniqueIndex;type:text"`
	// PasswordHash is a bcrypt hash and must never leave the store layer
	PasswordHash string          `gorm:"column:password;not null;type:text"`
	Balance      decimal.Decimal `gorm:"column:balance;not null;default:0;type:numeric(20,4)"`
	CreatedAt    time.Time       `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	LastLogin    *time.Time      `gorm:"column:last_login;type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
