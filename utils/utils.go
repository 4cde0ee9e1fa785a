package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateOTP returns a 6-digit one-time code, uniform over
// 100000-999999.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the platform entropy source is
		// broken; there is no safe fallback for a security code.
		panic("utils: crypto/rand unavailable: " + err.Error())
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}
