package routes

import (
	"Cook-App-Backend/internal/api/handlers"
	"Cook-App-Backend/internal/metrics"
	"Cook-App-Backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	AuthHandler     handlers.AuthHandler
	UserHandler     handlers.UserHandler
	ActivityHandler handlers.ActivityHandler
	DishHandler     handlers.DishHandler
	RecipeHandler   handlers.RecipeHandler
	SearchHandler   handlers.SearchHandler
	AdminHandler    handlers.AdminHandler
	Middleware      middleware.Middleware
	Verifier        middleware.TokenVerifier
	Users           middleware.UserProvisioner
	Metrics         *metrics.Metrics
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	if c.Metrics != nil {
		c.App.Use(c.Metrics.Middleware())
	}
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Dishes()
	c.Recipes()
	c.Search()
	c.Admin()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.Verifier, c.Users)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.Metrics != nil {
		c.App.Get("/metrics", c.Metrics.Handler())
	}
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	auth.Post("/register", c.AuthHandler.Register)
	auth.Post("/login", c.AuthHandler.Login)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.auth())
	// profile
	{
		user.Get("/me", c.UserHandler.Me)
		user.Patch("/me", c.UserHandler.UpdateMe)
		user.Get("/search", c.UserHandler.SearchUsers)
	}
	// social
	{
		user.Get("/me/social", c.UserHandler.GetMySocial)
		user.Post("/:id/follow", c.UserHandler.Follow)
		user.Delete("/:id/follow", c.UserHandler.Unfollow)
		user.Get("/:id/social", c.UserHandler.GetSocial)
	}
	// activity
	{
		user.Get("/me/activity", c.ActivityHandler.GetActivity)
		user.Get("/me/viewed", c.ActivityHandler.GetViewed)
		user.Post("/me/viewed/:id", c.ActivityHandler.LogView)
		user.Post("/me/cooked/:dish_id", c.ActivityHandler.AddCooked)
		user.Get("/me/notifications", c.UserHandler.GetNotifications)
		user.Put("/me/reminders", c.UserHandler.SetReminders)
		user.Get("/me/reminders", c.UserHandler.GetReminders)
	}
	user.Get("/:id", c.UserHandler.GetUser)
	user.Get("/:id/dishes", c.UserHandler.GetUserDishes)
	user.Get("/:id/recipes", c.UserHandler.GetUserRecipes)
}

func (c *Config) Dishes() {
	dishes := c.App.Group("/api/v1/dishes")
	dishes.Get("", c.DishHandler.GetDishes)
	dishes.Get("/suggest/today", c.DishHandler.SuggestToday)
	dishes.Get("/:id", c.DishHandler.GetDishDetail)

	dishes.Post("", c.auth(), c.DishHandler.CreateDish)
	dishes.Post("/with-recipe", c.auth(), c.DishHandler.CreateDishWithRecipe)
	dishes.Post("/:id/rate", c.auth(), c.DishHandler.RateDish)
	dishes.Post("/:id/favorite", c.auth(), c.DishHandler.ToggleFavorite)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)

	recipes.Post("", c.auth(), c.RecipeHandler.CreateRecipe)
	recipes.Post("/:id/rate", c.auth(), c.RecipeHandler.RateRecipe)
}

func (c *Config) Search() {
	search := c.App.Group("/api/v1/search")
	search.Get("/ingredients", c.SearchHandler.Ingredients)
	search.Get("/dishes", c.SearchHandler.Dishes)
	search.Get("/recipes", c.SearchHandler.Recipes)
	search.Get("/dishes/by-time", c.SearchHandler.DishesByTime)
	search.Get("/dishes/by-time-rating", c.SearchHandler.DishesByTimeAndRating)
	search.Get("/recipes/by-difficulty", c.SearchHandler.RecipesByDifficulty)
	search.Get("/users", c.auth(), c.SearchHandler.Users)
	search.Get("/all", c.auth(), c.SearchHandler.All)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.auth(), c.Middleware.AdminMiddleware())
	admin.Post("/dishes/cleanup", c.AdminHandler.CleanupDishes)
	admin.Post("/images/migrate", c.AdminHandler.MigrateImages)
	admin.Post("/ingredients", c.AdminHandler.CreateIngredient)
}
