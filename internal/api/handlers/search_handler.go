package handlers

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/internal/api/presenters"
	"Cook-App-Backend/pkg/search"

	"github.com/gofiber/fiber/v2"
)

type (
	SearchHandler interface {
		Ingredients(c *fiber.Ctx) error
		Users(c *fiber.Ctx) error
		Dishes(c *fiber.Ctx) error
		Recipes(c *fiber.Ctx) error
		DishesByTime(c *fiber.Ctx) error
		DishesByTimeAndRating(c *fiber.Ctx) error
		RecipesByDifficulty(c *fiber.Ctx) error
		All(c *fiber.Ctx) error
	}

	searchHandler struct {
		searchService search.SearchService
	}
)

func NewSearchHandler(searchService search.SearchService) SearchHandler {
	return &searchHandler{searchService: searchService}
}

func (h *searchHandler) Ingredients(c *fiber.Ctx) error {
	res, err := h.searchService.SearchIngredients(c.Context(), c.Query("q"))
	return h.respond(c, res, err)
}

func (h *searchHandler) Users(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	res, err := h.searchService.SearchUsers(c.Context(), c.Query("q"), userID)
	return h.respond(c, res, err)
}

func (h *searchHandler) Dishes(c *fiber.Ctx) error {
	res, err := h.searchService.SearchDishes(c.Context(), c.Query("q"))
	return h.respond(c, res, err)
}

func (h *searchHandler) Recipes(c *fiber.Ctx) error {
	res, err := h.searchService.SearchRecipes(c.Context(), c.Query("q"))
	return h.respond(c, res, err)
}

func (h *searchHandler) DishesByTime(c *fiber.Ctx) error {
	res, err := h.searchService.DishesByTime(c.Context(), c.QueryInt("max_time", 0))
	return h.respond(c, res, err)
}

func (h *searchHandler) DishesByTimeAndRating(c *fiber.Ctx) error {
	res, err := h.searchService.DishesByTimeAndRating(c.Context(), c.QueryInt("max_time", 0), c.QueryFloat("min_rating", 0))
	return h.respond(c, res, err)
}

func (h *searchHandler) RecipesByDifficulty(c *fiber.Ctx) error {
	res, err := h.searchService.RecipesByDifficulty(c.Context(), c.Query("difficulty"))
	return h.respond(c, res, err)
}

func (h *searchHandler) All(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	res, err := h.searchService.SearchAll(c.Context(), c.Query("q"), userID)
	return h.respond(c, res, err)
}

func (h *searchHandler) respond(c *fiber.Ctx, res interface{}, err error) error {
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearch, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearch)
}
