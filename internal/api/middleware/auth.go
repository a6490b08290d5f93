package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key the authenticated user id is stored
// under.
const UserIDKey = "user_id"

// AuthMiddleware validates JWT bearer tokens and stores the user id on the
// request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		userID, ok := claims[UserIDKey].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token carries no user id"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, int64(userID))
		c.Next()
	}
}

// UserID extracts the authenticated user id from the request context,
// zero when the request was not authenticated.
func UserID(c *gin.Context) int64 {
	if id, ok := c.Get(UserIDKey); ok {
		if v, ok := id.(int64); ok {
			return v
		}
	}
	return 0
}
