// Package signing signs and verifies webhook payloads with HMAC-SHA256.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// Sign returns the hex-encoded signature for body, prefixed with "sha256=".
func Sign(body, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return fmt.Sprintf("sha256=%x", mac.Sum(nil))
}

// Verify reports whether signature matches the payload in constant time.
func Verify(body, secret []byte, signature string) bool {
	return hmac.Equal([]byte(Sign(body, secret)), []byte(signature))
}
