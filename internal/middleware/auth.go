package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/chatrooms/pkg/auth"
)

const UserIDKey = "userID"

// blacklistPrefix is the key space the Account Directory writes revoked
// tokens to.
const blacklistPrefix = "blacklist:"

// AuthMiddleware проверяет JWT токен из заголовка Authorization.
// redisClient may be nil, in which case revoked tokens are not looked up.
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			abort(c, "missing or invalid token")
			return
		}
		authenticate(c, token, jwtManager, redisClient)
	}
}

// WSAuthMiddleware специальный middleware для WebSocket: browsers cannot set
// headers on the handshake, so the token may come as ?token=.
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractToken(c.Request)
		if err != nil {
			abort(c, "missing token")
			return
		}
		authenticate(c, token, jwtManager, redisClient)
	}
}

func authenticate(c *gin.Context, token string, jwtManager *auth.JWTManager, redisClient *redis.Client) {
	if redisClient != nil {
		exists, err := redisClient.Exists(c.Request.Context(), blacklistPrefix+token).Result()
		if err != nil || exists > 0 {
			abort(c, "token is blacklisted")
			return
		}
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		abort(c, "invalid token")
		return
	}
	if claims.Subject == "" {
		abort(c, "invalid user id")
		return
	}

	c.Set(UserIDKey, claims.Subject)
	c.Next()
}

func abort(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}
