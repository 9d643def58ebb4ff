package domain

import (
	"fmt"
	"regexp"
	"time"
)

// TransactionID is the creation-ordered identifier of a transactions row
type TransactionID uint64

// TokenField names a transactions column that receives a generated token
type TokenField string

// TokenFieldTransactionNumber is the dedicated token column
const TokenFieldTransactionNumber TokenField = "transaction_number"

// primaryKeyColumn is the row identifier. Notifications and updates are keyed
// on it, so it is never a valid token target.
const primaryKeyColumn = "transaction_id"

// Valid reports whether the field is one of the known token columns
func (f TokenField) Valid() bool {
	return f == TokenFieldTransactionNumber
}

// ParseTokenField converts a configuration value into a TokenField
func ParseTokenField(s string) (TokenField, error) {
	f := TokenField(s)
	if s == primaryKeyColumn {
		return "", fmt.Errorf("%w: %q is the primary key and cannot be rewritten", ErrInvalidTokenField, s)
	}
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTokenField, s)
	}
	return f, nil
}

var channelPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// ValidateChannel checks that a notification channel name is safe to embed in DDL
func ValidateChannel(channel string) error {
	if !channelPattern.MatchString(channel) {
		return fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
	return nil
}

// TransactionInserted is the JSON payload published by the insert trigger
type TransactionInserted struct {
	TransactionID TransactionID `json:"transaction_id"`
}

// TokenRewrittenEvent is published after a token has been written onto a transaction
type TokenRewrittenEvent struct {
	EventID       string        `json:"event_id"`
	TransactionID TransactionID `json:"transaction_id"`
	Field         TokenField    `json:"field"`
	TokenPrefix   string        `json:"token_prefix"`
	RewrittenAt   time.Time     `json:"rewritten_at"`
}

// AccountNumber identifies a customer account, e.g. ACC123456789
type AccountNumber string

var accountNumberPattern = regexp.MustCompile(`^ACC[0-9]+$`)

// Valid reports whether the account number is well formed
func (a AccountNumber) Valid() bool {
	return accountNumberPattern.MatchString(string(a))
}

// String returns the account number as a string
func (a AccountNumber) String() string {
	return string(a)
}

// TransactionType is the side of a trade
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)
