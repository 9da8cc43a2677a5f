package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

func Sha256String(input string) string {
	hash := sha256.New()
	hash.Write([]byte(input))
	hashSum := hash.Sum(nil)
	return hex.EncodeToString(hashSum)
}
