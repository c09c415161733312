package config

import (
	migration "Cook-App-Backend/cmd/database/migrate"
	"Cook-App-Backend/internal/api/handlers"
	"Cook-App-Backend/internal/api/routes"
	"Cook-App-Backend/internal/jobs"
	"Cook-App-Backend/internal/metrics"
	"Cook-App-Backend/internal/middleware"
	"Cook-App-Backend/internal/storage/memory"
	"Cook-App-Backend/internal/utils"
	"Cook-App-Backend/internal/utils/mailing"
	"Cook-App-Backend/internal/utils/storage"
	"Cook-App-Backend/pkg/activity"
	"Cook-App-Backend/pkg/dish"
	"Cook-App-Backend/pkg/firebase"
	"Cook-App-Backend/pkg/ingredient"
	"Cook-App-Backend/pkg/jwt"
	"Cook-App-Backend/pkg/notification"
	"Cook-App-Backend/pkg/recipe"
	"Cook-App-Backend/pkg/search"
	"Cook-App-Backend/pkg/user"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type repositories struct {
	users         user.UserRepository
	social        user.SocialRepository
	preferences   user.PreferenceRepository
	activity      activity.ActivityRepository
	notifications notification.NotificationRepository
	dishes        dish.DishRepository
	recipes       recipe.RecipeRepository
	ingredients   ingredient.IngredientRepository
}

func newMongoRepositories(db *mongo.Database) repositories {
	return repositories{
		users:         user.NewUserRepository(db),
		social:        user.NewSocialRepository(db),
		preferences:   user.NewPreferenceRepository(db),
		activity:      activity.NewActivityRepository(db),
		notifications: notification.NewNotificationRepository(db),
		dishes:        dish.NewDishRepository(db),
		recipes:       recipe.NewRecipeRepository(db),
	}
}

func newMemoryRepositories(store *memory.Store) repositories {
	return repositories{
		users:         store,
		social:        store,
		preferences:   store,
		activity:      store,
		notifications: store,
		dishes:        store,
		recipes:       store,
		ingredients:   store,
	}
}

// NewApp connects the configured stores and builds the fiber app. The
// returned func releases connections and stops background jobs.
func NewApp(ctx context.Context, log *zap.Logger) (*fiber.App, func(), error) {
	utils.InitValidator()
	validator := utils.Validate
	var closers []func()
	shutdown := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("LOG_LEVEL") == "debug",
	})

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file: %w", err)
	}
	closers = append(closers, func() { _ = file.Close() })

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT", 20),
		Expiration: 1 * time.Second,
	}))

	// stores
	var repos repositories
	switch driver := utils.GetConfig("STORE_DRIVER"); driver {
	case "memory":
		log.Warn("using in-memory store, data is lost on restart")
		repos = newMemoryRepositories(memory.NewStore())
	case "mongo":
		client, mdb, err := ConnectMongo(ctx)
		if err != nil {
			shutdown()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		if err := migration.MigrateMongo(ctx, mdb, log); err != nil {
			shutdown()
			return nil, nil, err
		}
		repos = newMongoRepositories(mdb)
	default:
		shutdown()
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}

	if repos.ingredients == nil {
		db, err := ConnectDB()
		if err != nil {
			shutdown()
			return nil, nil, err
		}
		if db != nil {
			if err := migration.Migrate(db, log); err != nil {
				shutdown()
				return nil, nil, err
			}
			repos.ingredients = ingredient.NewIngredientRepository(db)
		} else {
			log.Warn("DB_HOST not set, ingredient catalog kept in memory")
			repos.ingredients = memory.NewStore()
		}
	}

	rdb, err := ConnectRedis(ctx)
	if err != nil {
		log.Warn("ingredient cache disabled", zap.Error(err))
	}
	if rdb != nil {
		closers = append(closers, func() { _ = rdb.Close() })
	}

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	m := metrics.New()

	// Service
	jwtService := jwt.NewJWTService(
		utils.GetConfig("JWT_SECRET"),
		time.Duration(utils.GetConfigInt("JWT_TTL", 120))*time.Minute,
	)
	var verifier middleware.TokenVerifier = jwtService
	if utils.GetConfig("AUTH_PROVIDER") == "firebase" {
		fb, err := firebase.NewFirebaseService(ctx, utils.GetConfig("FIREBASE_PROJECT_ID"), utils.GetConfig("FIREBASE_CREDENTIALS"))
		if err != nil {
			shutdown()
			return nil, nil, err
		}
		verifier = fb
	}

	notificationService := notification.NewNotificationService(repos.notifications, m)
	userService := user.NewUserService(
		repos.users,
		repos.social,
		repos.preferences,
		repos.activity,
		repos.notifications,
		jwtService,
		mailer,
		m,
		log.Named("user"),
		utils.GetConfig("APP_URL"),
	)
	socialService := user.NewSocialService(repos.users, repos.social, notificationService, log.Named("social"))
	activityService := activity.NewActivityService(repos.activity)
	recipeService := recipe.NewRecipeService(repos.recipes, repos.activity, s3, m, log.Named("recipe"))
	dishService := dish.NewDishService(repos.dishes, repos.recipes, repos.activity, notificationService, s3, m, log.Named("dish"))
	ingredientService := ingredient.NewIngredientService(
		repos.ingredients,
		rdb,
		time.Duration(utils.GetConfigInt("CACHE_TTL", 300))*time.Second,
		log.Named("ingredient"),
	)
	searchService := search.NewSearchService(ingredientService, userService, repos.dishes, repos.recipes, log.Named("search"))

	scheduler := jobs.NewScheduler(dishService, m, log.Named("jobs"))
	if err := scheduler.Start(utils.GetConfig("CLEANUP_SCHEDULE")); err != nil {
		shutdown()
		return nil, nil, fmt.Errorf("invalid CLEANUP_SCHEDULE: %w", err)
	}
	closers = append(closers, scheduler.Stop)

	// routes
	routesConfig := routes.Config{
		App:             app,
		AuthHandler:     handlers.NewAuthHandler(userService, validator),
		UserHandler:     handlers.NewUserHandler(userService, socialService, notificationService, dishService, recipeService, validator),
		ActivityHandler: handlers.NewActivityHandler(activityService, validator),
		DishHandler:     handlers.NewDishHandler(dishService, validator),
		RecipeHandler:   handlers.NewRecipeHandler(recipeService, validator),
		SearchHandler:   handlers.NewSearchHandler(searchService),
		AdminHandler:    handlers.NewAdminHandler(dishService, ingredientService, validator),
		Middleware:      middleware.NewMiddleware(utils.GetConfig("CORS_ORIGINS"), utils.GetConfigList("ADMIN_EMAILS")),
		Verifier:        verifier,
		Users:           userService,
		Metrics:         m,
	}
	routesConfig.Setup()
	return app, shutdown, nil
}
