package server

import (
	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCommunities handles GET /api/communities
func (s *Server) GetCommunities(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	communities, err := s.communityRepo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(communities)
}

// GetCommunity handles GET /api/communities/:id
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	community, err := s.communityRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(community)
}

// CreateCommunity handles POST /api/communities
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Name        string           `json:"name"`
		Description string           `json:"description"`
		ImageURL    string           `json:"image_url"`
		Privacy     models.Privacy   `json:"privacy"`
		Domain      string           `json:"domain"`
		Theme       models.Theme     `json:"theme"`
		Features    []models.Feature `json:"features"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}
	if req.Privacy == "" {
		req.Privacy = models.PrivacyPublic
	}
	if req.Privacy != models.PrivacyPublic && req.Privacy != models.PrivacyPrivate {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Privacy must be public or private"))
	}

	community := &models.Community{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      models.StatusActive,
		Privacy:     req.Privacy,
		Domain:      req.Domain,
		Theme:       req.Theme,
		Features:    req.Features,
		CreatorID:   user.ID,
	}
	if err := s.communityRepo.Create(c.Context(), community); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(community)
}
