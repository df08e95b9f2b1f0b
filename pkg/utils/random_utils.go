package utils

import (
	"crypto/rand"
	"math/big"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomString returns n characters drawn uniformly from [0-9A-Z] using crypto/rand
func RandomString(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("generate random string failed")
		}
		out[i] = base36Alphabet[idx.Int64()]
	}
	return string(out)
}
