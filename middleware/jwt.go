package middleware

import (
	"eduapi/config"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a signed token for the user
func GenerateJWT(userID uint, role, username string) (string, error) {
	ttl := time.Duration(config.AppConfig.TokenTTLMinutes) * time.Minute
	claims := jwt.MapClaims{
		"userId":   userID,
		"role":     role,
		"username": username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// VerifyJWT parses and validates a token string, returning its claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, errors.New("token signature is invalid")
		}
		return nil, errors.New("token is malformed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid || claims["userId"] == nil {
		return nil, errors.New("invalid token payload")
	}
	return claims, nil
}

// JWTMiddleware authenticates the request and stores the caller's identity
// in the request-scoped Locals. Fiber discards Locals with the request, so
// identity never leaks into an unrelated request.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get(config.AppConfig.AuthHeader)
	if strings.TrimSpace(authHeader) == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, "User not logged in, please login first!", nil)
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := VerifyJWT(tokenString)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, err.Error(), nil)
	}

	// JWT numeric claims decode as float64
	userID := claims["userId"].(float64)
	c.Locals("userId", uint(userID))
	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}
	if username, ok := claims["username"].(string); ok {
		c.Locals("username", username)
	}

	return c.Next()
}

// JsonResponse writes the uniform response envelope
func JsonResponse(c *fiber.Ctx, statusCode int, msg string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"code": statusCode,
		"msg":  msg,
		"data": data,
	})
}

// ValidationErrorResponse aggregates all field messages into one response
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	msgs := make([]string, 0, len(errors))
	for _, m := range errors {
		msgs = append(msgs, m)
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"code": fiber.StatusUnprocessableEntity,
		"msg":  strings.Join(msgs, "; "),
		"data": errors,
	})
}
