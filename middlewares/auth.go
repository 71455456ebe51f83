package middlewares

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set for authenticated requests.
const (
	CtxUID   = "uid"
	CtxName  = "name"
	CtxEmail = "email"
	CtxToken = "id_token"
)

// AuthMiddleware verifies the Firebase ID token from the Authorization
// header and stores the caller's identity in the request context.
func AuthMiddleware(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		idToken := strings.TrimPrefix(header, "Bearer ")
		token, err := authClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxUID, token.UID)
		if name, ok := token.Claims["name"].(string); ok {
			c.Set(CtxName, name)
		}
		if email, ok := token.Claims["email"].(string); ok {
			c.Set(CtxEmail, email)
		}
		c.Set(CtxToken, idToken)
		c.Next()
	}
}
