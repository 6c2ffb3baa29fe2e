package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
	"github.com/Alice-Yoon/Katachii-Back--sample/responses"
)

// Auth resolves the bearer (or cookie) token into a user identity and stores
// {userId, role} in the request locals. Token issuance lives elsewhere; this
// middleware only verifies and extracts.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// Handle verifies the token and populates Locals("userId") and
// Locals("role").
func (a *Auth) Handle(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return responses.Unauthorized(c, "No auth token, access denied")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return responses.Unauthorized(c, "Token verification failed, access denied")
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return responses.Unauthorized(c, "User ID not found in token")
	}

	role := models.RoleUser
	if v, ok := claims["role"].(float64); ok {
		role = int(v)
	}

	c.Locals("userId", userID)
	c.Locals("role", role)

	return c.Next()
}

// AdminOnly gates admin routes. Role 0 is a regular user; anything else is
// an admin.
func AdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(int)
	if !ok || role == models.RoleUser {
		return responses.Unauthorized(c, "Admin access required")
	}
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	// The web client stores the token in a cookie instead of a header.
	return c.Cookies("w_auth")
}
