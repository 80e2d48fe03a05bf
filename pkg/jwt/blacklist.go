package jwt

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenBlacklistKey tạo cache key cho revoked token
// Hash token thay vì dùng raw string - key ngắn và không lưu token trong Redis
func TokenBlacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:blacklist:" + hex.EncodeToString(sum[:])
}
