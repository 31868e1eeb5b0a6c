package Controllers

import (
	"OpsBoard/Models"
	"OpsBoard/middleware"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles login, logout and the auth-check endpoint
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController creates a new AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// Login exchanges email+password+role for a session cookie. The role
// decides which identity table is consulted.
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input loginInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email, password, and role are required.",
		})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email, password, and role are required.",
		})
	}

	role, ok := Models.ParseRole(input.Role)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid role.",
		})
	}

	var (
		id       uint
		name     string
		verified bool
	)
	switch role {
	case Models.RoleAdmin:
		var admin Models.Admin
		if err := c.DB.Where("email = ?", input.Email).First(&admin).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found."})
		}
		id, name, verified = admin.ID, admin.Name, admin.CheckPassword(input.Password)
	default:
		var operator Models.OperationTeamMember
		if err := c.DB.Where("email = ?", input.Email).First(&operator).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found."})
		}
		id, name, verified = operator.ID, operator.Name, operator.CheckPassword(input.Password)
	}

	if !verified {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid password."})
	}

	token, err := middleware.SignToken(input.Email, role)
	if err != nil {
		log.Println("Failed to sign token:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error."})
	}

	if name == "" {
		name = "No Name Provided"
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(middleware.TokenValidity),
		HTTPOnly: true,
		Secure:   os.Getenv("ENV") == "production",
		SameSite: "Strict",
	})

	return ctx.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"userId": id,
			"email":  input.Email,
			"name":   name,
			"role":   role,
		},
		"message": "Login successful",
	})
}

// Logout clears the session cookie. Calling it without a cookie is not
// an error.
func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	if ctx.Cookies(middleware.TokenCookie) == "" {
		return ctx.JSON(fiber.Map{"success": true, "message": "Already logged out"})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   os.Getenv("ENV") == "production",
		SameSite: "Strict",
	})

	return ctx.JSON(fiber.Map{"success": true, "message": "Logout successful"})
}

// Check echoes the principal resolved by the dynamic guard.
func (c *AuthController) Check(ctx *fiber.Ctx) error {
	user, ok := CurrentPrincipal(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized access.",
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
		"message": "User is authenticated",
	})
}
