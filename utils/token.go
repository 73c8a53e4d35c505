package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken returns an unpredictable token. Ledger join tokens
// grant write access to anyone who holds them, so this draws from
// crypto/rand rather than a seeded PRNG.
func GenerateRandomToken(length int) (string, error) {
	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenCharset))))
		if err != nil {
			return "", err
		}
		token[i] = tokenCharset[n.Int64()]
	}
	return string(token), nil
}
