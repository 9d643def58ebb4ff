package token

import (
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/vestern/vestern/internal/adapter"
	"github.com/vestern/vestern/internal/domain"
)

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Generator produces random transaction tokens
//
//go:generate mockgen -source=token.go -destination=../mocks/token.go -package=mocks -mock_names=Generator=MockTokenGenerator
type Generator interface {
	// Generate returns 32 random bytes rendered as 64 lowercase hex characters
	Generate() (string, error)
}

type generator struct {
	random adapter.Random
}

// NewGenerator creates a token generator reading from the given entropy source
func NewGenerator(random adapter.Random) Generator {
	return &generator{random: random}
}

func (g *generator) Generate() (string, error) {
	buf := make([]byte, domain.TOKEN_BYTES)
	if err := g.random.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Valid reports whether s has the shape of a generated token
func Valid(s string) bool {
	return tokenPattern.MatchString(s)
}

// Prefix returns the leading characters of a token, safe for logs and events
func Prefix(s string) string {
	if len(s) <= domain.TOKEN_PREFIX_CHARS {
		return s
	}
	return s[:domain.TOKEN_PREFIX_CHARS]
}
