package handlers

import (
	"path/filepath"
	"strings"

	"recycle-rewards-system/middleware"
	"recycle-rewards-system/services"
	"recycle-rewards-system/utils"

	"github.com/gofiber/fiber/v2"
)

type createPickupRequest struct {
	Category   string            `json:"category" form:"category"`
	Quantity   services.Quantity `json:"quantity" form:"quantity"`
	Address    string            `json:"address" form:"address"`
	PickupDate string            `json:"pickup_date" form:"pickup_date"`
	PickupTime string            `json:"pickup_time" form:"pickup_time"`
}

func SetupPickupRoutes(app *fiber.App, pickupService *services.PickupService) {
	requireActor := middleware.UserContextMiddleware()

	app.Get("/score", func(c *fiber.Ctx) error {
		category := c.Query("category")
		return c.JSON(fiber.Map{
			"category": category,
			"quantity": services.ParseQuantity(c.Query("quantity")),
			"points":   services.ScoreRaw(category, c.Query("quantity")),
		})
	})

	app.Get("/categories", func(c *fiber.Ctx) error {
		return c.JSON(services.Categories())
	})

	app.Post("/pickups", requireActor, func(c *fiber.Ctx) error {
		var req createPickupRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
		pickup, err := pickupService.CreatePickup(c.UserContext(), actor(c), services.CreatePickupInput{
			Category:   req.Category,
			Quantity:   req.Quantity.Int(),
			Address:    req.Address,
			PickupDate: req.PickupDate,
			PickupTime: req.PickupTime,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pickup)
	})

	app.Get("/user/pickups", requireActor, func(c *fiber.Ctx) error {
		pickups, err := pickupService.ListUserPickups(c.UserContext(), actor(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(pickups)
	})

	app.Get("/rider/pickups/open", requireActor, func(c *fiber.Ctx) error {
		pickups, err := pickupService.ListOpenPickups(c.UserContext(), actor(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(pickups)
	})

	app.Get("/rider/pickups", requireActor, func(c *fiber.Ctx) error {
		pickups, err := pickupService.ListRiderPickups(c.UserContext(), actor(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(pickups)
	})

	app.Post("/rider/pickups/:id/claim", requireActor, func(c *fiber.Ctx) error {
		pickup, err := pickupService.ClaimPickup(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(pickup)
	})

	app.Post("/rider/pickups/:id/complete", requireActor, func(c *fiber.Ctx) error {
		var photo *services.PhotoUpload
		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			form, err := c.MultipartForm()
			if err != nil {
				return badRequest(c, "invalid photo upload", err)
			}
			if files := form.File["photo"]; len(files) > 0 {
				fh := files[0]
				if fh.Size > utils.MaxPhotoBytes {
					return badRequest(c, "photo is too large", nil)
				}
				f, err := fh.Open()
				if err != nil {
					return badRequest(c, "invalid photo upload", err)
				}
				defer f.Close()
				photo = &services.PhotoUpload{
					Body:        f,
					ContentType: fh.Header.Get(fiber.HeaderContentType),
					Ext:         strings.ToLower(filepath.Ext(fh.Filename)),
				}
			}
		}

		result, err := pickupService.CompletePickup(c.UserContext(), actor(c), c.Params("id"), photo)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})
}
