package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	DisplayID    string             `bson:"display_id" json:"display_id"`
	Name         string             `bson:"name" json:"name"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	Bio          string             `bson:"bio" json:"bio"`
	PasswordHash string             `bson:"hashed_password,omitempty" json:"-"`
	FirebaseUID  string             `bson:"firebase_uid,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	LastLoginAt  time.Time          `bson:"lastLoginAt" json:"last_active"`
}

// ProfileUpdate carries the only user fields an owner may edit. Nil means unchanged.
type ProfileUpdate struct {
	Name      *string
	Avatar    *string
	Bio       *string
	DisplayID *string
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Avatar == nil && p.Bio == nil && p.DisplayID == nil
}

type UserSocial struct {
	UserID         string   `bson:"user_id" json:"user_id"`
	Followers      []string `bson:"followers" json:"followers"`
	Following      []string `bson:"following" json:"following"`
	FollowerCount  int      `bson:"follower_count" json:"follower_count"`
	FollowingCount int      `bson:"following_count" json:"following_count"`
}

type UserPreferences struct {
	UserID               string   `bson:"user_id" json:"user_id"`
	Reminders            []string `bson:"reminders" json:"reminders"`
	DietaryRestrictions  []string `bson:"dietary_restrictions" json:"dietary_restrictions"`
	CuisinePreferences   []string `bson:"cuisine_preferences" json:"cuisine_preferences"`
	DifficultyPreference string   `bson:"difficulty_preference" json:"difficulty_preference"`
}

func NewUserSocial(userID string) *UserSocial {
	return &UserSocial{UserID: userID, Followers: []string{}, Following: []string{}}
}

func NewUserPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		UserID:               userID,
		Reminders:            []string{},
		DietaryRestrictions:  []string{},
		CuisinePreferences:   []string{},
		DifficultyPreference: "all",
	}
}
