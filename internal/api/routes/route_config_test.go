package routes_test

import (
	"Cook-App-Backend/internal/api/handlers"
	"Cook-App-Backend/internal/api/routes"
	"Cook-App-Backend/internal/metrics"
	"Cook-App-Backend/internal/middleware"
	"Cook-App-Backend/internal/storage/memory"
	"Cook-App-Backend/internal/utils"
	"Cook-App-Backend/pkg/activity"
	"Cook-App-Backend/pkg/dish"
	"Cook-App-Backend/pkg/ingredient"
	"Cook-App-Backend/pkg/jwt"
	"Cook-App-Backend/pkg/notification"
	"Cook-App-Backend/pkg/recipe"
	"Cook-App-Backend/pkg/search"
	"Cook-App-Backend/pkg/user"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Kind    string          `json:"kind"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	m := metrics.New()
	v := utils.NewValidator()
	log := zap.NewNop()

	jwtService := jwt.NewJWTService("route-secret", time.Hour)
	notifications := notification.NewNotificationService(store, m)
	users := user.NewUserService(store, store, store, store, store, jwtService, nil, m, log, "http://localhost")
	social := user.NewSocialService(store, store, notifications, log)
	recipes := recipe.NewRecipeService(store, store, nil, m, log)
	dishes := dish.NewDishService(store, store, store, notifications, nil, m, log)
	ingredients := ingredient.NewIngredientService(store, nil, time.Minute, log)

	app := fiber.New()
	cfg := routes.Config{
		App:             app,
		AuthHandler:     handlers.NewAuthHandler(users, v),
		UserHandler:     handlers.NewUserHandler(users, social, notifications, dishes, recipes, v),
		ActivityHandler: handlers.NewActivityHandler(activity.NewActivityService(store), v),
		DishHandler:     handlers.NewDishHandler(dishes, v),
		RecipeHandler:   handlers.NewRecipeHandler(recipes, v),
		SearchHandler:   handlers.NewSearchHandler(search.NewSearchService(ingredients, users, store, store, log)),
		AdminHandler:    handlers.NewAdminHandler(dishes, ingredients, v),
		Middleware:      middleware.NewMiddleware("*", []string{"admin@cook.app"}),
		Verifier:        jwtService,
		Users:           users,
		Metrics:         m,
	}
	cfg.Setup()
	return app
}

func do(t *testing.T, app *fiber.App, method string, path string, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, env := do(t, app, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{"email": email, "password": "secret1"})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestDishLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "cook@example.com")

	status, _ := do(t, app, fiber.MethodPost, "/api/v1/dishes", "", fiber.Map{"name": "Ramen", "cooking_time": 30})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env := do(t, app, fiber.MethodPost, "/api/v1/dishes", token, fiber.Map{
		"name":         "Ramen",
		"cooking_time": 30,
		"ingredients":  []string{"noodles", "broth"},
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = do(t, app, fiber.MethodPost, "/api/v1/dishes/"+created.ID+"/rate?rating=4", token, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var rating struct {
		AverageRating float64 `json:"average_rating"`
		RatingCount   int     `json:"rating_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rating))
	assert.InDelta(t, 4.0, rating.AverageRating, 1e-9)
	assert.Equal(t, 1, rating.RatingCount)

	status, env = do(t, app, fiber.MethodPost, "/api/v1/dishes/"+created.ID+"/rate", token, fiber.Map{"rating": 9})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "validation", env.Kind)

	status, _ = do(t, app, fiber.MethodGet, "/api/v1/dishes/"+created.ID, "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, env = do(t, app, fiber.MethodGet, "/api/v1/search/dishes?q=ram", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var found []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Len(t, found, 1)

	status, _ = do(t, app, fiber.MethodGet, "/api/v1/search/dishes/by-time?max_time=0", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUnknownDishIsNotFound(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, fiber.MethodGet, "/api/v1/dishes/507f1f77bcf86cd799439011", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Kind)
}

func TestAdminRoutesRequireAdminEmail(t *testing.T) {
	app := newTestApp(t)
	cook := register(t, app, "cook@example.com")
	admin := register(t, app, "admin@cook.app")

	status, _ := do(t, app, fiber.MethodPost, "/api/v1/admin/dishes/cleanup", cook, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env := do(t, app, fiber.MethodPost, "/api/v1/admin/dishes/cleanup", admin, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, _ = do(t, app, fiber.MethodPost, "/api/v1/admin/ingredients", admin, fiber.Map{"name": "Miso"})
	assert.Equal(t, fiber.StatusCreated, status)
	status, env = do(t, app, fiber.MethodPost, "/api/v1/admin/ingredients", admin, fiber.Map{"name": "miso"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "conflict", env.Kind)
}

func TestPingAndMetrics(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, fiber.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "cookapp_http_requests_total")
}
