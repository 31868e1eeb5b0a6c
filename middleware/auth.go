package middleware

import (
	"OpsBoard/Models"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// TokenValidity is how long a session token stays usable after login.
const TokenValidity = 7 * 24 * time.Hour

// TokenCookie is the cookie the session token travels in.
const TokenCookie = "token"

// TaskClaims is the payload carried by every session token.
type TaskClaims struct {
	EmailID string `json:"emailId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("defaultsecret123")
}

// SignToken issues a token for the given identity, valid for
// TokenValidity from now.
func SignToken(email string, role Models.Role) (string, error) {
	claims := TaskClaims{
		EmailID: email,
		Role:    string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenValidity)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey())
}

func decodeToken(c *fiber.Ctx) (*TaskClaims, error) {
	cookie := c.Cookies(TokenCookie)
	if cookie == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access.")
	}

	token, err := jwt.ParseWithClaims(cookie, &TaskClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secretKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token.")
	}

	claims, ok := token.Claims.(*TaskClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token.")
	}
	return claims, nil
}

// VerifyAdmin admits only tokens whose role claim resolves to ADMIN and
// whose email still exists in the admins table. On success the
// normalized principal is stored at c.Locals("user").
func VerifyAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := decodeToken(c)
		if err != nil {
			return respondAuthError(c, err)
		}
		return admitAdmin(c, claims)
	}
}

// VerifyOperation is the operation-team counterpart of VerifyAdmin.
func VerifyOperation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := decodeToken(c)
		if err != nil {
			return respondAuthError(c, err)
		}
		return admitOperation(c, claims)
	}
}

// VerifyAny decodes first and dispatches to whichever role guard the
// token claims. Used on endpoints reachable by either role.
func VerifyAny() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := decodeToken(c)
		if err != nil {
			return respondAuthError(c, err)
		}

		role, ok := Models.ParseRole(claims.Role)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied. Invalid role.",
			})
		}
		switch role {
		case Models.RoleAdmin:
			return admitAdmin(c, claims)
		default:
			return admitOperation(c, claims)
		}
	}
}

func admitAdmin(c *fiber.Ctx, claims *TaskClaims) error {
	role, ok := Models.ParseRole(claims.Role)
	if !ok || role != Models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied: Not an admin.",
		})
	}

	var admin Models.Admin
	if err := Models.DB.Where("email = ?", claims.EmailID).First(&admin).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found.",
		})
	}

	c.Locals("user", Models.Principal{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
		Role:  Models.RoleAdmin,
	})
	return c.Next()
}

func admitOperation(c *fiber.Ctx, claims *TaskClaims) error {
	role, ok := Models.ParseRole(claims.Role)
	if !ok || role != Models.RoleOperation {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied: Not an operation team member.",
		})
	}

	var operator Models.OperationTeamMember
	if err := Models.DB.Where("email = ?", claims.EmailID).First(&operator).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found.",
		})
	}

	c.Locals("user", Models.Principal{
		ID:    operator.ID,
		Email: operator.Email,
		Name:  operator.Name,
		Role:  Models.RoleOperation,
	})
	return c.Next()
}

func respondAuthError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token."})
}
