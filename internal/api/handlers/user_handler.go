package handlers

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/internal/api/presenters"
	"Cook-App-Backend/pkg/dish"
	"Cook-App-Backend/pkg/notification"
	"Cook-App-Backend/pkg/recipe"
	"Cook-App-Backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Me(c *fiber.Ctx) error
		UpdateMe(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		SearchUsers(c *fiber.Ctx) error
		GetMySocial(c *fiber.Ctx) error
		GetSocial(c *fiber.Ctx) error
		Follow(c *fiber.Ctx) error
		Unfollow(c *fiber.Ctx) error
		SetReminders(c *fiber.Ctx) error
		GetReminders(c *fiber.Ctx) error
		GetNotifications(c *fiber.Ctx) error
		GetUserDishes(c *fiber.Ctx) error
		GetUserRecipes(c *fiber.Ctx) error
	}

	userHandler struct {
		userService         user.UserService
		socialService       user.SocialService
		notificationService notification.NotificationService
		dishService         dish.DishService
		recipeService       recipe.RecipeService
		validator           *validator.Validate
	}
)

func NewUserHandler(
	userService user.UserService,
	socialService user.SocialService,
	notificationService notification.NotificationService,
	dishService dish.DishService,
	recipeService recipe.RecipeService,
	validator *validator.Validate,
) UserHandler {
	return &userHandler{
		userService:         userService,
		socialService:       socialService,
		notificationService: notificationService,
		dishService:         dishService,
		recipeService:       recipeService,
		validator:           validator,
	}
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.GetMe(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) UpdateMe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateProfileRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateUser, err)
	}

	res, err := h.userService.UpdateProfile(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateUser)
}

func (h *userHandler) GetUser(c *fiber.Ctx) error {
	res, err := h.userService.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) SearchUsers(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.SearchUsers(c.Context(), c.Query("q"), userID, domain.MaxUserSearchResults)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchUsers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchUsers)
}

func (h *userHandler) GetMySocial(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.socialService.GetSocial(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSocial, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSocial)
}

func (h *userHandler) GetSocial(c *fiber.Ctx) error {
	res, err := h.socialService.GetSocial(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSocial, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSocial)
}

func (h *userHandler) Follow(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.socialService.Follow(c.Context(), userID, c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFollow, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessFollow)
}

func (h *userHandler) Unfollow(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.socialService.Unfollow(c.Context(), userID, c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUnfollow, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUnfollow)
}

func (h *userHandler) SetReminders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RemindersRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetReminders, err)
	}

	res, err := h.userService.SetReminders(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetReminders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"reminders": res}, fiber.StatusOK, domain.MessageSuccessSetReminders)
}

func (h *userHandler) GetReminders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.GetReminders(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReminders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"reminders": res}, fiber.StatusOK, domain.MessageSuccessGetReminders)
}

func (h *userHandler) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.notificationService.GetNotifications(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNotification, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotification)
}

func (h *userHandler) GetUserDishes(c *fiber.Ctx) error {
	res, err := h.dishService.GetDishesByUser(c.Context(), c.Params("id"), c.QueryInt("limit", domain.DefaultDishLimit))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *userHandler) GetUserRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipesByUser(c.Context(), c.Params("id"), c.QueryInt("limit", domain.DefaultRecipeLimit))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}
