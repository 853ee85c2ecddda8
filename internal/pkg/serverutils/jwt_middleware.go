package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewJwtMiddleware verifies HMAC bearer tokens signed with secret and stores
// the subject in Locals("user_id"). Websocket upgrades may pass the token as
// the "token" query parameter since browsers cannot set headers on them.
func NewJwtMiddleware(secret string) fiber.Handler {
	key := []byte(secret)
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if authHeader == "" && websocket.IsWebSocketUpgrade(ctx) && ctx.Query("token") != "" {
			authHeader = "Bearer " + ctx.Query("token")
		}
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			userID, _ = claims.GetSubject()
		}
		ctx.Locals("user_id", userID)
		return ctx.Next()
	}
}
