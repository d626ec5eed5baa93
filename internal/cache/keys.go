package cache

import "fmt"

const revokedSessionPrefix = "blacklist:%s"

// RevokedSessionKey is set while a logged-out token would otherwise still be valid.
func RevokedSessionKey(jti string) string {
	return fmt.Sprintf(revokedSessionPrefix, jti)
}
