package middleware

import (
	"strings"

	"kitnotes/model"
	"kitnotes/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token into a model.User stored under
// "user". Requests without a token continue as model.Anonymous; a token
// that fails validation is rejected.
func AuthMiddleware(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set("user", model.Anonymous)
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			TrackError("auth")
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseAccessToken(tokenString, secret, issuer)
		if err != nil {
			TrackError("auth")
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("user", model.User{
			ObjectID: claims.UserID,
			Username: claims.Username,
			Login:    true,
		})
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}
