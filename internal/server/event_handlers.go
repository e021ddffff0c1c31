package server

import (
	"time"

	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCommunityEvents handles GET /api/communities/:id/events
func (s *Server) GetCommunityEvents(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	events, err := s.eventRepo.ListByCommunity(c.Context(), communityID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(events)
}

// CreateEvent handles POST /api/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		URL         string     `json:"url"`
		ImageURL    string     `json:"image_url"`
		StartDate   time.Time  `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		CommunityID uint       `json:"community_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if req.StartDate.IsZero() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Start date is required"))
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("End date must not precede start date"))
	}

	if _, err := s.communityRepo.GetByID(c.Context(), req.CommunityID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		DateInterval: models.DateInterval{
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
		UserID:      user.ID,
		CommunityID: req.CommunityID,
	}
	if err := s.eventRepo.Create(c.Context(), event); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// MarkEventInterest handles POST /api/events/:id/interest
func (s *Server) MarkEventInterest(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	if _, err := s.eventRepo.GetByID(c.Context(), eventID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if err := s.eventRepo.MarkInterest(c.Context(), eventID, user.ID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
