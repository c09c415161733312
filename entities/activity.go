package entities

import "time"

const MaxViewedHistory = 50

type ViewedEntry struct {
	Type     string    `bson:"type" json:"type"`
	ID       string    `bson:"id" json:"id"`
	ViewedAt time.Time `bson:"viewed_at" json:"viewed_at"`
}

type UserActivity struct {
	UserID         string        `bson:"user_id" json:"user_id"`
	FavoriteDishes []string      `bson:"favorite_dishes" json:"favorite_dishes"`
	CookedDishes   []string      `bson:"cooked_dishes" json:"cooked_dishes"`
	ViewedDishes   []ViewedEntry `bson:"viewed_dishes" json:"viewed_dishes"`
	CreatedRecipes []string      `bson:"created_recipes" json:"created_recipes"`
	CreatedDishes  []string      `bson:"created_dishes" json:"created_dishes"`
}

func NewUserActivity(userID string) *UserActivity {
	return &UserActivity{
		UserID:         userID,
		FavoriteDishes: []string{},
		CookedDishes:   []string{},
		ViewedDishes:   []ViewedEntry{},
		CreatedRecipes: []string{},
		CreatedDishes:  []string{},
	}
}

// PushRecent drops any entry with the same (type, id), puts entry first and
// truncates the result to max entries.
func PushRecent(history []ViewedEntry, entry ViewedEntry, max int) []ViewedEntry {
	out := make([]ViewedEntry, 0, len(history)+1)
	out = append(out, entry)
	for _, e := range history {
		if e.Type == entry.Type && e.ID == entry.ID {
			continue
		}
		out = append(out, e)
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}
