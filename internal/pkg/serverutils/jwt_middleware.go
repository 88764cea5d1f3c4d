package serverutils

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SignSessionToken mints the bearer token handed out when a session is
// created. Every later call on the session carries it; the session id claim
// is the only identity the system has.
func SignSessionToken(sessionId string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionId,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	sessionId, err := parseSessionToken(tokenStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	ctx.Locals("session_id", sessionId)
	return ctx.Next()
}

// ParseSessionTokenFromQuery supports websocket upgrades, where browsers
// cannot set an Authorization header.
func ParseSessionTokenFromQuery(ctx *fiber.Ctx) (string, error) {
	return parseSessionToken(ctx.Query("token"))
}

func parseSessionToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	sessionId, ok := claims["session_id"].(string)
	if !ok || sessionId == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sessionId, nil
}
