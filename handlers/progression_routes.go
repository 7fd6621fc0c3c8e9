package handlers

import (
	"recycle-rewards-system/middleware"
	"recycle-rewards-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressionRoutes(app *fiber.App, progressionService *services.ProgressionService, reconcileService *services.ReconcileService) {
	requireActor := middleware.UserContextMiddleware()

	// Tiers are public; a caller with an actor also sees their balance.
	app.Get("/rewards", func(c *fiber.Ctx) error {
		resp := fiber.Map{"tiers": services.ListTiers()}
		if a, err := middleware.ResolveActor(c); err == nil && a.Kind == services.ActorUser {
			if profile, err := progressionService.GetProfile(c.UserContext(), a); err == nil {
				resp["points"] = profile.Points
			}
		}
		return c.JSON(resp)
	})

	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		entries, err := progressionService.Leaderboard(c.UserContext(), c.QueryInt("limit", services.DefaultLeaderboardSize))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(entries)
	})

	app.Get("/forest/stage", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"stage":  services.Stage(c.QueryInt("level", 0)),
			"stages": services.ForestStages(),
		})
	})

	app.Get("/user/forest", requireActor, func(c *fiber.Ctx) error {
		stage, err := progressionService.GetForest(c.UserContext(), actor(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stage)
	})

	app.Get("/user/profile", requireActor, func(c *fiber.Ctx) error {
		profile, err := progressionService.GetProfile(c.UserContext(), actor(c))
		if err != nil {
			return respondError(c, err)
		}
		report, err := reconcileService.VerifyBalance(c.UserContext(), profile.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"profile":    profile,
			"balance":    report,
			"consistent": report.Consistent,
		})
	})
}
