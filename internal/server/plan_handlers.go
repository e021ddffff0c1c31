package server

import (
	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCommunityPlans handles GET /api/communities/:id/plans
func (s *Server) GetCommunityPlans(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	plans, err := s.planRepo.ListByCommunity(c.Context(), communityID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(plans)
}

// CreatePlan handles POST /api/plans
func (s *Server) CreatePlan(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Name         string              `json:"name"`
		Description  string              `json:"description"`
		Price        float64             `json:"price"`
		Interval     models.PlanInterval `json:"interval"`
		StripePlanID string              `json:"stripe_plan_id"`
		CommunityID  uint                `json:"community_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" || req.StripePlanID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name and stripe plan id are required"))
	}
	switch req.Interval {
	case models.PlanIntervalWeek, models.PlanIntervalMonth, models.PlanIntervalYear:
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Interval must be week, month or year"))
	}
	if req.Price < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Price must not be negative"))
	}

	community, err := s.communityRepo.GetByID(c.Context(), req.CommunityID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	// Only the community creator can define its plans.
	if community.CreatorID != user.ID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Only the community creator can manage plans"))
	}

	plan := &models.Plan{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Interval:     req.Interval,
		StripePlanID: req.StripePlanID,
		CommunityID:  req.CommunityID,
	}
	if err := s.planRepo.Create(c.Context(), plan); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}
