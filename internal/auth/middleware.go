package auth

import (
	"strings"

	"github.com/Piroenzo/mini-red-social/internal/apierr"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// JWTMiddleware validates bearer tokens, rejects revoked ones and stores the
// user id in locals.
func JWTMiddleware(secret string, redisClient *redis.Client) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			return apierr.Unauthorized("missing bearer token")
		}

		parsed, err := parseMiddlewareClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
			return secretBytes, nil
		})
		if err != nil {
			return apierr.Unauthorized("invalid or expired token")
		}

		claims, ok := parsed.Claims.(*Claims)
		if !ok || !parsed.Valid {
			return apierr.Unauthorized("token invalid")
		}

		if redisClient != nil && claims.ID != "" {
			revoked, err := redisClient.Exists(c.Context(), revokedKey(claims.ID)).Result()
			if err == nil && revoked > 0 {
				return apierr.Unauthorized("token revoked")
			}
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("claims", claims)
		return c.Next()
	}
}

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

// UserID returns the authenticated user id stored by JWTMiddleware.
func UserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("user_id").(int64)
	return id
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
