package server

import (
	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCommunityChannels handles GET /api/communities/:id/channels
func (s *Server) GetCommunityChannels(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	channels, err := s.channelRepo.ListByCommunity(c.Context(), communityID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(channels)
}

// CreateChannel handles POST /api/channels
func (s *Server) CreateChannel(c *fiber.Ctx) error {
	if _, err := s.requireUser(c); err != nil {
		return nil
	}

	var req struct {
		Name          string `json:"name"`
		Icon          string `json:"icon"`
		AllowsWriting *bool  `json:"allows_writing"`
		CommunityID   uint   `json:"community_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	if _, err := s.communityRepo.GetByID(c.Context(), req.CommunityID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	allowsWriting := true
	if req.AllowsWriting != nil {
		allowsWriting = *req.AllowsWriting
	}

	channel := &models.Channel{
		Name:          req.Name,
		Icon:          req.Icon,
		Status:        models.StatusActive,
		AllowsWriting: allowsWriting,
		CommunityID:   req.CommunityID,
	}
	if err := s.channelRepo.Create(c.Context(), channel); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(channel)
}
