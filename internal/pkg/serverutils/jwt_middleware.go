package serverutils

import (
	"strings"
	"time"

	"excel-analytics-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityKey = "identity"

// NewJwtMiddleware verifies the bearer token and stores the caller in
// ctx.Locals. It does not look the user up.
func NewJwtMiddleware(secret string) fiber.Handler {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}
		tokenStr := strings.TrimSpace(authHeader[7:])

		token, err := parser.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		rawId, _ := claims["user_id"].(string)
		userId, err := uuid.Parse(rawId)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		role := entity.UserRoleUser
		if r, _ := claims["role"].(string); r == string(entity.UserRoleAdmin) {
			role = entity.UserRoleAdmin
		}

		ctx.Locals(identityKey, entity.Identity{UserId: userId, Role: role})
		return ctx.Next()
	}
}

// AdminOnly must run after the JWT middleware.
func AdminOnly(ctx *fiber.Ctx) error {
	identity, ok := GetIdentity(ctx)
	if !ok || !identity.IsAdmin() {
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Admin access required"))
	}
	return ctx.Next()
}

func GetIdentity(ctx *fiber.Ctx) (entity.Identity, bool) {
	identity, ok := ctx.Locals(identityKey).(entity.Identity)
	return identity, ok
}

// IssueToken signs an HS256 token carrying the claims the middleware reads.
func IssueToken(secret string, userId uuid.UUID, role entity.UserRole, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"role":    string(role),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}
