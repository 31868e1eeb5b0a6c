package Controllers

import (
	"OpsBoard/Models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CurrentPrincipal returns the identity the auth middleware attached to
// the request. Handlers behind a guard can rely on it being present.
func CurrentPrincipal(ctx *fiber.Ctx) (Models.Principal, bool) {
	user, ok := ctx.Locals("user").(Models.Principal)
	return user, ok
}

func internalError(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
}

func validationError(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}
