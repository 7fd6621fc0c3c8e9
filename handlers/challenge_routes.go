package handlers

import (
	"recycle-rewards-system/middleware"
	"recycle-rewards-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService) {
	requireActor := middleware.UserContextMiddleware()

	app.Get("/challenges", requireActor, func(c *fiber.Ctx) error {
		challenges, err := challengeService.ListChallenges(c.UserContext(), actor(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(challenges)
	})

	app.Post("/challenges/:id/complete", requireActor, func(c *fiber.Ctx) error {
		result, err := challengeService.CompleteChallenge(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})
}
