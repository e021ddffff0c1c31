package server

import (
	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMySubscriptions handles GET /api/users/me/subscriptions
func (s *Server) GetMySubscriptions(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	subs, err := s.subscriptionRepo.ListByUser(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(subs)
}

// CreateSubscription handles POST /api/subscriptions
func (s *Server) CreateSubscription(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		PlanID               uint   `json:"plan_id"`
		StripeSubscriptionID string `json:"stripe_subscription_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	plan, err := s.planRepo.GetByID(c.Context(), req.PlanID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	sub := &models.Subscription{
		UserID:               user.ID,
		CommunityID:          plan.CommunityID,
		PlanID:               plan.ID,
		StripeSubscriptionID: req.StripeSubscriptionID,
	}
	if err := s.subscriptionRepo.Create(c.Context(), sub); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// CancelSubscription handles DELETE /api/subscriptions/:id
func (s *Server) CancelSubscription(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	sub, err := s.subscriptionRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if sub.UserID != user.ID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Subscription belongs to another user"))
	}

	if err := s.subscriptionRepo.Deactivate(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
