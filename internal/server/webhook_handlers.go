package server

import (
	"log/slog"
	"net/http"

	"commune/internal/clerk"
	"commune/internal/middleware"
	"commune/internal/service"

	"github.com/gofiber/fiber/v2"
)

// HandleClerkWebhook handles POST /clerk, the identity provider's lifecycle
// event ingress. Verification failures and handler errors both answer 400;
// recognized and ignored events answer 200 with an empty body. The provider
// owns the retry policy, this side only signals accept/reject.
func (s *Server) HandleClerkWebhook(c *fiber.Ctx) error {
	ctx := c.UserContext()
	body := c.Body()

	headers := http.Header{}
	headers.Set(clerk.HeaderSvixID, c.Get(clerk.HeaderSvixID))
	headers.Set(clerk.HeaderSvixTimestamp, c.Get(clerk.HeaderSvixTimestamp))
	headers.Set(clerk.HeaderSvixSignature, c.Get(clerk.HeaderSvixSignature))

	if s.verifier == nil {
		middleware.Logger.ErrorContext(ctx, "webhook rejected: no signing secret configured")
		middleware.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
		return c.Status(fiber.StatusBadRequest).SendString("No event was attached")
	}

	if err := s.verifier.Verify(body, headers); err != nil {
		middleware.Logger.WarnContext(ctx, "webhook signature verification failed",
			slog.String("error", err.Error()))
		middleware.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
		return c.Status(fiber.StatusBadRequest).SendString("No event was attached")
	}

	event, err := clerk.ParseEvent(body)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "webhook body is not a valid event",
			slog.String("error", err.Error()))
		middleware.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
		return c.Status(fiber.StatusBadRequest).SendString("No event was attached")
	}

	switch event.Type {
	case clerk.EventUserCreated, clerk.EventUserUpdated:
		_, err = s.userService.SyncUser(ctx, service.SyncUserInput{
			ClerkID:      event.Data.ID,
			FirstName:    event.Data.FirstName,
			LastName:     event.Data.LastName,
			Email:        event.Data.PrimaryEmail(),
			ProfileImage: event.Data.ImageURL,
		})
	case clerk.EventUserDeleted:
		err = s.userService.DeleteUser(ctx, event.Data.ID)
	default:
		middleware.Logger.InfoContext(ctx, "ignored clerk webhook event",
			slog.String("event_type", event.Type))
		middleware.WebhookEvents.WithLabelValues(event.Type, "ignored").Inc()
		return c.SendStatus(fiber.StatusOK)
	}

	if err != nil {
		middleware.Logger.ErrorContext(ctx, "webhook event handling failed",
			slog.String("event_type", event.Type),
			slog.String("clerk_id", event.Data.ID),
			slog.String("error", err.Error()),
		)
		middleware.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
		return c.Status(fiber.StatusBadRequest).SendString("Webhook error")
	}

	middleware.WebhookEvents.WithLabelValues(event.Type, "ok").Inc()
	return c.SendStatus(fiber.StatusOK)
}
