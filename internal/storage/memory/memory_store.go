// Package memory keeps every collection in process. It backs local runs with
// STORE_DRIVER=memory and the service tests. Each method holds the lock for
// its whole body, which stands in for single-document atomicity.
package memory

import (
	"Cook-App-Backend/entities"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu sync.RWMutex

	users         map[string]*entities.User
	social        map[string]*entities.UserSocial
	activity      map[string]*entities.UserActivity
	notifications map[string]*entities.UserNotifications
	preferences   map[string]*entities.UserPreferences
	dishes        map[string]*entities.Dish
	recipes       map[string]*entities.Recipe
	ingredients   map[string]*entities.Ingredient
}

func NewStore() *Store {
	return &Store{
		users:         map[string]*entities.User{},
		social:        map[string]*entities.UserSocial{},
		activity:      map[string]*entities.UserActivity{},
		notifications: map[string]*entities.UserNotifications{},
		preferences:   map[string]*entities.UserPreferences{},
		dishes:        map[string]*entities.Dish{},
		recipes:       map[string]*entities.Recipe{},
		ingredients:   map[string]*entities.Ingredient{},
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func cloneStrings(list []string) []string {
	if list == nil {
		return []string{}
	}
	return append([]string(nil), list...)
}

// ---- users ----

func cloneUser(u *entities.User) *entities.User {
	c := *u
	return &c
}

func (s *Store) CreateUser(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email || u.DisplayID == user.DisplayID {
			return entities.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID.Hex()] = cloneUser(user)
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, entities.ErrRecordNotFound
}

func (s *Store) DisplayIDExists(_ context.Context, displayID string, excludeUserID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, u := range s.users {
		if u.DisplayID == displayID && id != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return entities.ErrRecordNotFound
	}
	u.LastLoginAt = at
	return nil
}

func (s *Store) UpdateProfile(_ context.Context, id string, patch entities.ProfileUpdate) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	if patch.DisplayID != nil {
		for otherID, other := range s.users {
			if otherID != id && other.DisplayID == *patch.DisplayID {
				return nil, entities.ErrDuplicateKey
			}
		}
		u.DisplayID = *patch.DisplayID
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	return cloneUser(u), nil
}

func (s *Store) SearchUsersByDisplayID(_ context.Context, query string, excludeUserID string, limit int) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.User, 0)
	for _, id := range sortedKeys(s.users) {
		u := s.users[id]
		if id == excludeUserID || !containsFold(u.DisplayID, query) {
			continue
		}
		out = append(out, cloneUser(u))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ---- social ----

func cloneSocial(v *entities.UserSocial) *entities.UserSocial {
	c := *v
	c.Followers = cloneStrings(v.Followers)
	c.Following = cloneStrings(v.Following)
	return &c
}

func (s *Store) socialFor(userID string) *entities.UserSocial {
	v, ok := s.social[userID]
	if !ok {
		v = entities.NewUserSocial(userID)
		s.social[userID] = v
	}
	return v
}

func (s *Store) InitSocial(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.socialFor(userID)
	return nil
}

func (s *Store) GetSocial(_ context.Context, userID string) (*entities.UserSocial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.social[userID]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	return cloneSocial(v), nil
}

func (s *Store) AddFollowing(_ context.Context, followerID string, targetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.social[followerID]
	if !ok {
		return false, nil
	}
	var added bool
	v.Following, added = entities.AddToSet(v.Following, targetID)
	v.FollowingCount = len(v.Following)
	return added, nil
}

func (s *Store) AddFollower(_ context.Context, targetID string, followerID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.social[targetID]
	if !ok {
		return false, 0, entities.ErrRecordNotFound
	}
	var added bool
	v.Followers, added = entities.AddToSet(v.Followers, followerID)
	v.FollowerCount = len(v.Followers)
	return added, v.FollowerCount, nil
}

func (s *Store) RemoveFollowing(_ context.Context, followerID string, targetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.social[followerID]
	if !ok {
		return false, nil
	}
	var removed bool
	v.Following, removed = entities.Pull(v.Following, targetID)
	v.FollowingCount = len(v.Following)
	return removed, nil
}

func (s *Store) RemoveFollower(_ context.Context, targetID string, followerID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.social[targetID]
	if !ok {
		return false, 0, entities.ErrRecordNotFound
	}
	var removed bool
	v.Followers, removed = entities.Pull(v.Followers, followerID)
	v.FollowerCount = len(v.Followers)
	return removed, v.FollowerCount, nil
}

// ---- preferences ----

func (s *Store) InitPreferences(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.preferences[userID]; !ok {
		s.preferences[userID] = entities.NewUserPreferences(userID)
	}
	return nil
}

func (s *Store) GetPreferences(_ context.Context, userID string) (*entities.UserPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.preferences[userID]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	c := *v
	c.Reminders = cloneStrings(v.Reminders)
	c.DietaryRestrictions = cloneStrings(v.DietaryRestrictions)
	c.CuisinePreferences = cloneStrings(v.CuisinePreferences)
	return &c, nil
}

func (s *Store) SetReminders(_ context.Context, userID string, reminders []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.preferences[userID]
	if !ok {
		v = entities.NewUserPreferences(userID)
		s.preferences[userID] = v
	}
	v.Reminders = cloneStrings(reminders)
	return nil
}

// ---- activity ----

func (s *Store) activityFor(userID string) *entities.UserActivity {
	v, ok := s.activity[userID]
	if !ok {
		v = entities.NewUserActivity(userID)
		s.activity[userID] = v
	}
	return v
}

func (s *Store) InitActivity(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activityFor(userID)
	return nil
}

func (s *Store) GetActivity(_ context.Context, userID string) (*entities.UserActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.activity[userID]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	c := *v
	c.FavoriteDishes = cloneStrings(v.FavoriteDishes)
	c.CookedDishes = cloneStrings(v.CookedDishes)
	c.CreatedRecipes = cloneStrings(v.CreatedRecipes)
	c.CreatedDishes = cloneStrings(v.CreatedDishes)
	c.ViewedDishes = append([]entities.ViewedEntry{}, v.ViewedDishes...)
	return &c, nil
}

func (s *Store) PushViewed(_ context.Context, userID string, entry entities.ViewedEntry, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.activityFor(userID)
	v.ViewedDishes = entities.PushRecent(v.ViewedDishes, entry, max)
	return nil
}

func (s *Store) AddCooked(_ context.Context, userID string, dishID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.activityFor(userID)
	v.CookedDishes, _ = entities.AddToSet(v.CookedDishes, dishID)
	return nil
}

func (s *Store) AddFavorite(_ context.Context, userID string, dishID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.activityFor(userID)
	v.FavoriteDishes, _ = entities.AddToSet(v.FavoriteDishes, dishID)
	return nil
}

func (s *Store) RemoveFavorite(_ context.Context, userID string, dishID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.activity[userID]; ok {
		v.FavoriteDishes, _ = entities.Pull(v.FavoriteDishes, dishID)
	}
	return nil
}

func (s *Store) AddCreatedDish(_ context.Context, userID string, dishID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.activityFor(userID)
	v.CreatedDishes, _ = entities.AddToSet(v.CreatedDishes, dishID)
	return nil
}

func (s *Store) AddCreatedRecipe(_ context.Context, userID string, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.activityFor(userID)
	v.CreatedRecipes, _ = entities.AddToSet(v.CreatedRecipes, recipeID)
	return nil
}

// ---- notifications ----

func (s *Store) InitNotifications(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[userID]; !ok {
		s.notifications[userID] = &entities.UserNotifications{UserID: userID, Notifications: []entities.Notification{}}
	}
	return nil
}

func (s *Store) GetNotifications(_ context.Context, userID string) (*entities.UserNotifications, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.notifications[userID]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	c := *v
	c.Notifications = append([]entities.Notification{}, v.Notifications...)
	return &c, nil
}

func (s *Store) PushNotification(_ context.Context, userID string, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.notifications[userID]
	if !ok {
		v = &entities.UserNotifications{UserID: userID}
		s.notifications[userID] = v
	}
	v.Notifications = append(v.Notifications, notification)
	v.UnreadCount++
	return nil
}

// ---- dishes ----

func cloneDish(d *entities.Dish) *entities.Dish {
	c := *d
	c.Ingredients = cloneStrings(d.Ingredients)
	c.LikedBy = cloneStrings(d.LikedBy)
	c.Ratings = append([]int{}, d.Ratings...)
	return &c
}

func (s *Store) CreateDish(_ context.Context, dish *entities.Dish) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dish.ID.IsZero() {
		dish.ID = primitive.NewObjectID()
	}
	s.dishes[dish.ID.Hex()] = cloneDish(dish)
	return nil
}

func (s *Store) GetDishByID(_ context.Context, id string) (*entities.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dishes[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	return cloneDish(d), nil
}

func (s *Store) DeleteDish(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dishes[id]; !ok {
		return entities.ErrRecordNotFound
	}
	delete(s.dishes, id)
	return nil
}

func (s *Store) SetDishRecipe(_ context.Context, dishID string, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dishes[dishID]
	if !ok {
		return entities.ErrRecordNotFound
	}
	d.RecipeID = recipeID
	return nil
}

func (s *Store) AddDishRating(_ context.Context, id string, stars int) (*entities.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dishes[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	d.Ratings = append(d.Ratings, stars)
	d.AverageRating = entities.AverageRating(d.Ratings)
	return cloneDish(d), nil
}

func (s *Store) AddDishLike(_ context.Context, dishID string, userID string) (*entities.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dishes[dishID]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	d.LikedBy, _ = entities.AddToSet(d.LikedBy, userID)
	return cloneDish(d), nil
}

func (s *Store) RemoveDishLike(_ context.Context, dishID string, userID string) (*entities.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dishes[dishID]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	d.LikedBy, _ = entities.Pull(d.LikedBy, userID)
	return cloneDish(d), nil
}

// newestDishes returns dishes matching keep, newest first.
func (s *Store) newestDishes(keep func(*entities.Dish) bool) []*entities.Dish {
	out := make([]*entities.Dish, 0)
	for _, d := range s.dishes {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() > out[j].ID.Hex()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) ListDishes(_ context.Context, skip int, limit int) ([]*entities.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.newestDishes(func(d *entities.Dish) bool { return d.Name != "" })
	return pageDishes(all, skip, limit), nil
}

func (s *Store) GetDishesByCreator(_ context.Context, creatorID string, limit int) ([]*entities.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.newestDishes(func(d *entities.Dish) bool { return d.CreatorID == creatorID })
	return pageDishes(all, 0, limit), nil
}

func (s *Store) SearchDishesByName(_ context.Context, query string, limit int) ([]*entities.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.newestDishes(func(d *entities.Dish) bool { return containsFold(d.Name, query) })
	return pageDishes(all, 0, limit), nil
}

func (s *Store) FilterDishes(_ context.Context, maxCookingTime int, minRating float64, limit int) ([]*entities.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.newestDishes(func(d *entities.Dish) bool {
		return d.CookingTime <= maxCookingTime && (minRating <= 0 || d.AverageRating >= minRating)
	})
	return pageDishes(all, 0, limit), nil
}

func (s *Store) DeleteUnnamedDishes(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, d := range s.dishes {
		if d.Name == "" {
			delete(s.dishes, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) GetDishesWithLegacyImage(_ context.Context) ([]*entities.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.newestDishes(func(d *entities.Dish) bool { return d.ImageB64 != "" })
	return pageDishes(all, 0, len(all)), nil
}

func (s *Store) SetDishImageURL(_ context.Context, id string, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dishes[id]
	if !ok {
		return entities.ErrRecordNotFound
	}
	d.ImageURL = imageURL
	d.ImageB64 = ""
	d.ImageMime = ""
	return nil
}

func pageDishes(all []*entities.Dish, skip int, limit int) []*entities.Dish {
	out := make([]*entities.Dish, 0)
	for i := skip; i < len(all) && len(out) < limit; i++ {
		out = append(out, cloneDish(all[i]))
	}
	return out
}

// ---- recipes ----

func cloneRecipe(r *entities.Recipe) *entities.Recipe {
	c := *r
	c.Ingredients = append([]entities.RecipeIngredient{}, r.Ingredients...)
	c.Instructions = cloneStrings(r.Instructions)
	c.Ratings = append([]int{}, r.Ratings...)
	return &c
}

func (s *Store) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if recipe.ID.IsZero() {
		recipe.ID = primitive.NewObjectID()
	}
	s.recipes[recipe.ID.Hex()] = cloneRecipe(recipe)
	return nil
}

func (s *Store) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	return cloneRecipe(r), nil
}

func (s *Store) DeleteRecipe(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return entities.ErrRecordNotFound
	}
	delete(s.recipes, id)
	return nil
}

func (s *Store) AddRecipeRating(_ context.Context, id string, stars int) (*entities.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	r.Ratings = append(r.Ratings, stars)
	r.AverageRating = entities.AverageRating(r.Ratings)
	return cloneRecipe(r), nil
}

func (s *Store) newestRecipes(keep func(*entities.Recipe) bool, limit int) []*entities.Recipe {
	all := make([]*entities.Recipe, 0)
	for _, r := range s.recipes {
		if keep(r) {
			all = append(all, r)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.Hex() > all[j].ID.Hex()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	out := make([]*entities.Recipe, 0)
	for i := 0; i < len(all) && (limit <= 0 || len(out) < limit); i++ {
		out = append(out, cloneRecipe(all[i]))
	}
	return out
}

func (s *Store) ListRecipes(_ context.Context, limit int) ([]*entities.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestRecipes(func(*entities.Recipe) bool { return true }, limit), nil
}

func (s *Store) GetRecipesByCreator(_ context.Context, creatorID string, limit int) ([]*entities.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestRecipes(func(r *entities.Recipe) bool { return r.CreatorID == creatorID }, limit), nil
}

func (s *Store) SearchRecipes(_ context.Context, query string, limit int) ([]*entities.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestRecipes(func(r *entities.Recipe) bool {
		return containsFold(r.Name, query) || containsFold(r.Description, query)
	}, limit), nil
}

func (s *Store) GetRecipesByDifficulty(_ context.Context, difficulty string, limit int) ([]*entities.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestRecipes(func(r *entities.Recipe) bool { return r.Difficulty == difficulty }, limit), nil
}

func (s *Store) GetRecipesWithLegacyImage(_ context.Context) ([]*entities.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestRecipes(func(r *entities.Recipe) bool { return r.ImageB64 != "" }, 0), nil
}

func (s *Store) SetRecipeImageURL(_ context.Context, id string, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return entities.ErrRecordNotFound
	}
	r.ImageURL = imageURL
	r.ImageB64 = ""
	r.ImageMime = ""
	return nil
}

// ---- ingredients ----

func (s *Store) SearchIngredients(_ context.Context, query string, limit int) ([]*entities.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*entities.Ingredient, 0)
	for _, ing := range s.ingredients {
		if containsFold(ing.Name, query) {
			c := *ing
			matches = append(matches, &c)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Store) CreateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(ingredient.Name)
	if _, ok := s.ingredients[key]; ok {
		return entities.ErrDuplicateKey
	}
	if ingredient.ID == uuid.Nil {
		ingredient.ID = uuid.New()
	}
	now := time.Now().UTC()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now
	c := *ingredient
	s.ingredients[key] = &c
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
