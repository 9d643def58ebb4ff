package domain

import "time"

const (
	// Notification constants
	DEFAULT_NOTIFY_CHANNEL  = "transaction_inserted"
	INSERT_TRIGGER_NAME     = "transactions_notify_insert"
	INSERT_TRIGGER_FUNCTION = "notify_transaction_inserted"

	// Token constants
	TOKEN_BYTES        = 32
	TOKEN_HEX_LENGTH   = TOKEN_BYTES * 2
	TOKEN_PREFIX_CHARS = 8

	// Assignment constants
	DEFAULT_ASSIGN_DELAY = 2 * time.Second

	// API constants
	MAX_TRANSACTIONS_LIMIT = 50
)
