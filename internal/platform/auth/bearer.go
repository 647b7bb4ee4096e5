// Package auth はAPIの簡易Bearerトークン認証を提供します。
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerRequired returns a Gin middleware function that validates a static
// bearer token and restricts access to authenticated callers only.
// expected が空の場合、認証はスキップされます（開発向け）。
func BearerRequired(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// トークン未設定時は認証なしで通す
		if expected == "" {
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		// タイミング攻撃を避けるため定数時間比較を使う
		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid bearer token"})
			return
		}

		c.Next()
	}
}
