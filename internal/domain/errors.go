package domain

import "errors"

var (
	// ErrTransactionNotFound is returned when an update matches no transaction row
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidPayload is returned when a notification payload cannot be decoded
	ErrInvalidPayload = errors.New("invalid notification payload")

	// ErrInvalidChannel is returned when a notification channel name is not a plain identifier
	ErrInvalidChannel = errors.New("invalid notification channel")

	// ErrInvalidTokenField is returned when a token field is not one of the known columns
	ErrInvalidTokenField = errors.New("invalid token field")
)
