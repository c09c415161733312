package handlers

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/internal/api/presenters"
	"Cook-App-Backend/pkg/dish"
	"Cook-App-Backend/pkg/ingredient"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		CleanupDishes(c *fiber.Ctx) error
		MigrateImages(c *fiber.Ctx) error
		CreateIngredient(c *fiber.Ctx) error
	}

	adminHandler struct {
		dishService       dish.DishService
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewAdminHandler(dishService dish.DishService, ingredientService ingredient.IngredientService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		dishService:       dishService,
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func (h *adminHandler) CleanupDishes(c *fiber.Ctx) error {
	res, err := h.dishService.Cleanup(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCleanup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCleanup)
}

func (h *adminHandler) MigrateImages(c *fiber.Ctx) error {
	res, err := h.dishService.MigrateLegacyImages(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedMigrateImages, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMigrateImages)
}

func (h *adminHandler) CreateIngredient(c *fiber.Ctx) error {
	req := new(domain.CreateIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	res, err := h.ingredientService.CreateIngredient(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}
