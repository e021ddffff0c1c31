package server

import (
	"commune/internal/middleware"
	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser handles GET /api/users/me. It answers 200 with the caller's
// user record, or 200 with a null body when no identity was presented or the
// identity matches no stored user. Resolution never fails.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	ident := middleware.IdentityFrom(c)

	user, err := s.userService.CurrentUser(c.Context(), ident)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(user)
}

// GetUserByClerkID handles GET /api/users/:clerkId. Like GetCurrentUser it
// answers 200 with null when no user carries the id.
func (s *Server) GetUserByClerkID(c *fiber.Ctx) error {
	clerkID := c.Params("clerkId")

	user, err := s.userService.GetUserByClerkID(c.Context(), clerkID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(user)
}

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	users, err := s.userService.ListUsers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(users)
}
