package handlers

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/api/presenters"
	"Cook-App-Backend/pkg/activity"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ActivityHandler interface {
		GetActivity(c *fiber.Ctx) error
		GetViewed(c *fiber.Ctx) error
		LogView(c *fiber.Ctx) error
		AddCooked(c *fiber.Ctx) error
	}

	activityHandler struct {
		activityService activity.ActivityService
		validator       *validator.Validate
	}
)

func NewActivityHandler(activityService activity.ActivityService, validator *validator.Validate) ActivityHandler {
	return &activityHandler{
		activityService: activityService,
		validator:       validator,
	}
}

func (h *activityHandler) GetActivity(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.activityService.GetActivity(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetActivity, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetActivity)
}

func (h *activityHandler) GetViewed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.activityService.GetViewed(c.Context(), userID, c.QueryInt("limit", entities.MaxViewedHistory))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetActivity, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetActivity)
}

// LogView takes the entity type from the body or the "type" query param.
func (h *activityHandler) LogView(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.LogViewRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	if req.EntityType == "" {
		req.EntityType = c.Query("type")
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogView, err)
	}

	if err := h.activityService.LogView(c.Context(), userID, req.EntityType, c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogView, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogView)
}

func (h *activityHandler) AddCooked(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.activityService.AddCooked(c.Context(), userID, c.Params("dish_id")); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddCooked, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAddCooked)
}
