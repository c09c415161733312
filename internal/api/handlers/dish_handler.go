package handlers

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/internal/api/presenters"
	"Cook-App-Backend/pkg/dish"
	"encoding/base64"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DishHandler interface {
		CreateDish(c *fiber.Ctx) error
		CreateDishWithRecipe(c *fiber.Ctx) error
		GetDishes(c *fiber.Ctx) error
		GetDishDetail(c *fiber.Ctx) error
		SuggestToday(c *fiber.Ctx) error
		RateDish(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
	}

	dishHandler struct {
		dishService dish.DishService
		validator   *validator.Validate
	}
)

func NewDishHandler(dishService dish.DishService, validator *validator.Validate) DishHandler {
	return &dishHandler{
		dishService: dishService,
		validator:   validator,
	}
}

func (h *dishHandler) CreateDish(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateDishRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := imageFromForm(c, &req.ImageB64, &req.ImageMime); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDish, err)
	}

	res, err := h.dishService.CreateDish(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDish, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDish)
}

func (h *dishHandler) CreateDishWithRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateDishWithRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := imageFromForm(c, &req.ImageB64, &req.ImageMime); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDishWithRecipe, err)
	}

	res, err := h.dishService.CreateDishWithRecipe(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDishWithRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDishWithRecipe)
}

func (h *dishHandler) GetDishes(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", domain.DefaultDishLimit)

	res, err := h.dishService.ListDishes(c.Context(), skip, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *dishHandler) GetDishDetail(c *fiber.Ctx) error {
	res, err := h.dishService.GetDish(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishDetail)
}

func (h *dishHandler) SuggestToday(c *fiber.Ctx) error {
	res, err := h.dishService.SuggestToday(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

// RateDish reads the rating from a JSON body, falling back to ?rating=.
func (h *dishHandler) RateDish(c *fiber.Ctx) error {
	req := new(domain.RateRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	if req.Rating == 0 {
		req.Rating = c.QueryInt("rating", 0)
	}

	res, err := h.dishService.RateDish(c.Context(), c.Params("id"), req.Rating)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRateDish, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRateDish)
}

func (h *dishHandler) ToggleFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.ToggleFavorite(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFavorite)
}

// imageFromForm lets multipart clients send the picture as an "image" file
// instead of base64 text.
func imageFromForm(c *fiber.Ctx, encoded *string, mime *string) error {
	if *encoded != "" {
		return nil
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	*encoded = base64.StdEncoding.EncodeToString(raw)
	if *mime == "" {
		*mime = fh.Header.Get(fiber.HeaderContentType)
	}
	return nil
}
