package server

import (
	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetChannelMessages handles GET /api/channels/:id/messages
func (s *Server) GetChannelMessages(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	messages, err := s.messageRepo.ListByChannel(c.Context(), channelID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(messages)
}

// CreateMessage handles POST /api/messages
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Message           string              `json:"message"`
		Type              models.MessageType  `json:"type"`
		ChannelID         uint                `json:"channel_id"`
		ParentMessageID   *uint               `json:"parent_message_id"`
		ImageURL          string              `json:"image_url"`
		Question          string              `json:"question"`
		Options           []string            `json:"options"`
		AllowsMultiAnswer bool                `json:"allows_multi_answer"`
		Duration          models.PollDuration `json:"duration"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Type == "" {
		req.Type = models.MessageTypeText
	}

	switch req.Type {
	case models.MessageTypeText:
		if req.Message == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Message is required"))
		}
	case models.MessageTypeImage:
		if req.ImageURL == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Image URL is required for image messages"))
		}
	case models.MessageTypePoll:
		if req.Question == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Question is required for polls"))
		}
		if len(req.Options) < 2 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Polls need at least two options"))
		}
		if !models.ValidPollDuration(req.Duration) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid poll duration"))
		}
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Type must be text, image or poll"))
	}

	channel, err := s.channelRepo.GetByID(c.Context(), req.ChannelID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if channel.Status != models.StatusActive || !channel.AllowsWriting {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewValidationError("Channel does not accept messages"))
	}

	message := &models.Message{
		Message:         req.Message,
		Type:            req.Type,
		CommunityID:     channel.CommunityID,
		ChannelID:       channel.ID,
		UserID:          user.ID,
		ParentMessageID: req.ParentMessageID,
		ImageURL:        req.ImageURL,
	}
	if req.Type == models.MessageTypePoll {
		message.Question = req.Question
		message.AllowsMultiAnswer = req.AllowsMultiAnswer
		message.Duration = req.Duration
		message.Options = make([]models.PollOption, len(req.Options))
		for i, text := range req.Options {
			message.Options[i] = models.PollOption{Text: text, Votes: []uint{}}
		}
	}

	if err := s.messageRepo.Create(c.Context(), message); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// VoteOnPoll handles POST /api/messages/:id/vote
func (s *Server) VoteOnPoll(c *fiber.Ctx) error {
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		OptionIndex int `json:"option_index"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageRepo.Vote(c.Context(), messageID, req.OptionIndex, user.ID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(message)
}
