package token

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Generator mints opaque session tokens. A token has no decodable structure
// and is used only for session correlation.
type Generator interface {
	Next() (string, error)
}

// HexGenerator produces 32-hex-char tokens from crypto/rand
type HexGenerator struct{}

// NewHexGenerator creates a new hex token generator
func NewHexGenerator() *HexGenerator {
	return &HexGenerator{}
}

// Next returns a fresh opaque token
func (g *HexGenerator) Next() (string, error) {
	return randomHex(16)
}

// NewUniqueID mints the secondary opaque identifier assigned to a profile at
// creation ("CUS-" + 8 uppercase hex chars). Its keyspace is large enough that
// collisions are treated as negligible; no store check is performed.
func NewUniqueID() (string, error) {
	s, err := randomHex(4)
	if err != nil {
		return "", err
	}
	return "CUS-" + strings.ToUpper(s), nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
