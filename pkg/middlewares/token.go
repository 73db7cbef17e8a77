package middlewares

import (
	t_token "devcollab/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// QueryToken token in query name, used by the websocket handshake where
	// headers are not available to browser clients
	QueryToken = "auth"

	// TokenUserID get user id from token, set c.Locals name
	TokenUserID = "UserID"
	// TokenUserName get user name from token, set c.Locals name
	TokenUserName = "UserName"
)

// JWTMiddleware validates the bearer JWT from the Authorization header,
// falling back to the "auth" query parameter for websocket upgrades.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenStr string
		if header := c.Get(fiber.HeaderAuthorization); header != "" {
			var err error
			if tokenStr, err = t_token.StripBearer(header); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
		}

		if tokenStr == "" {
			tokenStr = c.Query(QueryToken)
		}

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		token, err := jwt.ParseWithClaims(tokenStr, &t_token.Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return t_token.JWTSecret, nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		if claims, ok := token.Claims.(*t_token.Claims); ok && token.Valid {
			c.Locals(TokenUserID, claims.UserID)
			c.Locals(TokenUserName, claims.Name)
		} else {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		return c.Next()
	}
}
