package server

import (
	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCommunityThreads handles GET /api/communities/:id/threads
func (s *Server) GetCommunityThreads(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	threads, err := s.threadRepo.ListByCommunity(c.Context(), communityID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(threads)
}

// CreateThread handles POST /api/threads
func (s *Server) CreateThread(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text        string `json:"text"`
		ImageURL    string `json:"image_url"`
		CommunityID uint   `json:"community_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Text == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Text is required"))
	}

	// Threads must land in an existing community.
	if _, err := s.communityRepo.GetByID(c.Context(), req.CommunityID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	thread := &models.Thread{
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		UserID:      user.ID,
		CommunityID: req.CommunityID,
	}
	if err := s.threadRepo.Create(c.Context(), thread); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(thread)
}

// LikeThread handles POST /api/threads/:id/like
func (s *Server) LikeThread(c *fiber.Ctx) error {
	threadID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	if _, err := s.threadRepo.GetByID(c.Context(), threadID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if err := s.threadRepo.Like(c.Context(), threadID, user.ID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnlikeThread handles DELETE /api/threads/:id/like
func (s *Server) UnlikeThread(c *fiber.Ctx) error {
	threadID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	if err := s.threadRepo.Unlike(c.Context(), threadID, user.ID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
