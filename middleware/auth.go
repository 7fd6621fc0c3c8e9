package middleware

import (
	"recycle-rewards-system/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	actorLocalsKey = "actor"
)

// ResolveActor reads the actor the gateway forwarded, if any.
func ResolveActor(c *fiber.Ctx) (services.Actor, error) {
	return services.ParseActor(c.Get(HeaderActorRole), c.Get(HeaderActorID))
}

// UserContextMiddleware requires an actor on the request and stores it in
// Locals for handlers.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := ResolveActor(c)
		if err != nil {
			zap.L().Warn("[USER_CTX] actor headers missing or invalid",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing actor context, request must come through gateway with auth context",
			})
		}

		c.Locals(actorLocalsKey, actor)
		zap.L().Debug("[USER_CTX] actor attached",
			zap.String("actor_id", actor.ID),
			zap.String("role", string(actor.Kind)),
			zap.String("path", c.Path()),
		)
		return c.Next()
	}
}

// ActorFromCtx returns the actor stored by UserContextMiddleware.
func ActorFromCtx(c *fiber.Ctx) (services.Actor, bool) {
	actor, ok := c.Locals(actorLocalsKey).(services.Actor)
	return actor, ok
}
