package domain

import (
	"strings"
	"time"
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login successful"
	MessageSuccessGetUser         = "success get user"
	MessageSuccessUpdateUser      = "user updated successfully"
	MessageSuccessSearchUsers     = "success search users"
	MessageSuccessGetSocial       = "success get social data"
	MessageSuccessFollow          = "user followed successfully"
	MessageSuccessUnfollow        = "user unfollowed successfully"
	MessageSuccessSetReminders    = "reminders set successfully"
	MessageSuccessGetReminders    = "success get reminders"
	MessageSuccessGetActivity     = "success get activity"
	MessageSuccessAddCooked       = "dish added to cooked history"
	MessageSuccessLogView         = "view recorded"
	MessageSuccessGetNotification = "success get notifications"

	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedGetUser         = "failed to get user"
	MessageFailedUpdateUser      = "failed to update user"
	MessageFailedSearchUsers     = "failed to search users"
	MessageFailedGetSocial       = "failed to get social data"
	MessageFailedFollow          = "failed to follow user"
	MessageFailedUnfollow        = "failed to unfollow user"
	MessageFailedSetReminders    = "failed to set reminders"
	MessageFailedGetReminders    = "failed to get reminders"
	MessageFailedGetActivity     = "failed to get activity"
	MessageFailedAddCooked       = "failed to add cooked dish"
	MessageFailedLogView         = "failed to record view"
	MessageFailedGetNotification = "failed to get notifications"

	ErrUserNotFound         = NewError(KindNotFound, "user not found")
	ErrEmailAlreadyExists   = NewError(KindConflict, "email already registered")
	ErrDisplayIDTaken       = NewError(KindConflict, "display id already taken")
	ErrInvalidCredentials   = NewError(KindUnauthorized, "invalid email or password")
	ErrCannotFollowSelf     = NewError(KindValidation, "you cannot follow yourself")
	ErrEmptyProfileUpdate   = NewError(KindValidation, "no editable fields in update")
	ErrInvalidEntityType    = NewError(KindValidation, "entity type must be dish or recipe")
	ErrSocialGraphAsymmetry = NewError(KindDependency, "follow partially applied")
)

const (
	EntityTypeDish   = "dish"
	EntityTypeRecipe = "recipe"

	MaxUserSearchResults = 20
)

// DeriveDisplayID takes the local part of an email. subjectID is the fallback
// when the local part is empty.
func DeriveDisplayID(email, subjectID string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local != "" {
		return local
	}
	if len(subjectID) > 8 {
		subjectID = subjectID[:8]
	}
	return "user_" + subjectID
}

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Name     string `json:"name" validate:"omitempty,max=100"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	// UpdateProfileRequest lists every field an owner may change. Anything
	// else in the request body is dropped by the decoder.
	UpdateProfileRequest struct {
		Name      *string `json:"name" validate:"omitempty,max=100"`
		Avatar    *string `json:"avatar" validate:"omitempty,max=2048"`
		Bio       *string `json:"bio" validate:"omitempty,max=500"`
		DisplayID *string `json:"display_id" validate:"omitempty,min=1,max=64,excludesall=/@"`
	}

	UserResponse struct {
		ID         string    `json:"id"`
		Email      string    `json:"email"`
		DisplayID  string    `json:"display_id"`
		Name       string    `json:"name"`
		Avatar     string    `json:"avatar"`
		Bio        string    `json:"bio"`
		CreatedAt  time.Time `json:"created_at"`
		LastActive time.Time `json:"last_active"`
	}

	SocialResponse struct {
		Followers      []string `json:"followers"`
		Following      []string `json:"following"`
		FollowerCount  int      `json:"follower_count"`
		FollowingCount int      `json:"following_count"`
	}

	FollowResponse struct {
		Message       string `json:"msg"`
		FollowerCount int    `json:"follower_count"`
	}

	RemindersRequest struct {
		Reminders []string `json:"reminders" validate:"dive,reminder_time"`
	}

	LogViewRequest struct {
		EntityType string `json:"entity_type" validate:"omitempty,oneof=dish recipe"`
	}

	ViewedEntryResponse struct {
		Type     string    `json:"type"`
		ID       string    `json:"id"`
		ViewedAt time.Time `json:"viewed_at"`
	}

	ActivityResponse struct {
		FavoriteDishes []string              `json:"favorite_dishes"`
		CookedDishes   []string              `json:"cooked_dishes"`
		ViewedDishes   []ViewedEntryResponse `json:"viewed_dishes"`
		CreatedRecipes []string              `json:"created_recipes"`
		CreatedDishes  []string              `json:"created_dishes"`
	}

	NotificationResponse struct {
		Type      string    `json:"type"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"created_at"`
		Read      bool      `json:"read"`
	}

	NotificationsResponse struct {
		Notifications []NotificationResponse `json:"notifications"`
		UnreadCount   int                    `json:"unread_count"`
	}
)
