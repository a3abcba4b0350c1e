package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Roles carried in the JWT role claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated caller, extracted once at the handler
// boundary and passed explicitly into service calls.
type Principal struct {
	UserID int
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IssueToken signs an HS256 token for the principal, valid for 72 hours.
func IssueToken(p Principal, secret string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.UserID,
		"email":   p.Email,
		"role":    p.Role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies an HS256 token string and returns its principal.
// Used where the jwt middleware cannot run, such as websocket upgrades
// that carry the token as a query parameter.
func ParseToken(tokenString, secret string) (Principal, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Principal{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fiber.ErrUnauthorized
	}
	return principalFromClaims(claims)
}

// FromCtx reads the principal from the verified JWT the jwt middleware
// stored in Locals. It fails when the request never passed that middleware.
func FromCtx(c *fiber.Ctx) (Principal, error) {
	u := c.Locals("user")
	if u == nil {
		return Principal{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Principal{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fiber.ErrUnauthorized
	}
	return principalFromClaims(claims)
}

func principalFromClaims(claims jwt.MapClaims) (Principal, error) {
	userID, err := intClaim(claims, "user_id")
	if err != nil {
		return Principal{}, err
	}

	p := Principal{UserID: userID, Role: RoleUser}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		p.Role = role
	}
	return p, nil
}

// RequireAdmin rejects callers whose token doesn't carry the admin role.
func RequireAdmin(c *fiber.Ctx) error {
	p, err := FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !p.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
	}
	return c.Next()
}

func intClaim(claims jwt.MapClaims, key string) (int, error) {
	raw, ok := claims[key]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}
