package adapter

import (
	"crypto/rand"
	"io"
)

// Random is a source of cryptographically secure random bytes
//
//go:generate mockgen -source=random.go -destination=../mocks/random.go -package=mocks -mock_names=Random=MockRandom
type Random interface {
	// Read fills b entirely or returns an error
	Read(b []byte) error
}

// CryptoRandom reads from crypto/rand
type CryptoRandom struct{}

// NewRandom creates a Random backed by the operating system CSPRNG
func NewRandom() Random {
	return &CryptoRandom{}
}

func (r *CryptoRandom) Read(b []byte) error {
	_, err := io.ReadFull(rand.Reader, b)
	return err
}
