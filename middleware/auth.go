package middleware

import (
	"net/http"
	"strings"

	userRepo "haven/database/repository/user"
	"haven/models"
	"haven/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware validates the bearer token, checks it against the cached
// session hash and loads the acting user into the request context.
func AuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// A token is only honored while its hash is still in the auth cache;
		// logout and account deletion drop the entry.
		cachedHash, err := utils.GetAuthCacheClient().Get(c.Request.Context(), utils.AuthCachePrefix+userID).Result()
		if err != nil || cachedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}

		c.Set(actorKey, models.ActorFromUser(user))
		c.Next()
	}
}

// GetActor returns the authenticated actor set by AuthMiddleware.
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
