package handlers

import (
	"recycle-rewards-system/services"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

// SetupAuthRoutes exposes credential checks to the gateway. The gateway owns
// sessions; this service only answers who a set of credentials belongs to.
func SetupAuthRoutes(app *fiber.App, accountService *services.AccountService) {
	auth := app.Group("/auth")

	auth.Post("/users", func(c *fiber.Ctx) error {
		var req services.RegisterInput
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		user, err := accountService.RegisterUser(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	auth.Post("/riders", func(c *fiber.Ctx) error {
		var req services.RegisterInput
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		rider, err := accountService.RegisterRider(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rider)
	})

	auth.Post("/login", func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		kind := services.ActorUser
		if req.Role != "" {
			kind = services.ActorKind(req.Role)
		}
		a, err := accountService.Login(c.UserContext(), kind, req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(a)
	})
}
