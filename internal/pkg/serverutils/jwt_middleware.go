package serverutils

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware attaches the token's user_id to ctx.Locals. Requests
// without an Authorization header pass through anonymously; a header with
// a bad token is rejected.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			return ctx.Next()
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return Unauthorized("Missing token")
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
		if err != nil || !token.Valid {
			return Unauthorized("Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return Unauthorized("Invalid claims")
		}

		if uid, ok := claims["user_id"]; ok && uid != nil {
			ctx.Locals("user_id", fmt.Sprint(uid))
		} else if sub, err := claims.GetSubject(); err == nil && sub != "" {
			ctx.Locals("user_id", sub)
		}
		return ctx.Next()
	}
}

// UserID returns the authenticated user, or nil for anonymous requests.
func UserID(ctx *fiber.Ctx) *string {
	if v, ok := ctx.Locals("user_id").(string); ok && v != "" {
		return &v
	}
	return nil
}
