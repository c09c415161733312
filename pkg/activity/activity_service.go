package activity

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	ActivityService interface {
		LogView(ctx context.Context, userID string, entityType string, entityID string) error
		AddCooked(ctx context.Context, userID string, dishID string) error
		GetActivity(ctx context.Context, userID string) (domain.ActivityResponse, error)
		GetViewed(ctx context.Context, userID string, limit int) ([]domain.ViewedEntryResponse, error)
	}

	activityService struct {
		activityRepository ActivityRepository
		now                func() time.Time
	}
)

func NewActivityService(activityRepository ActivityRepository) ActivityService {
	return &activityService{
		activityRepository: activityRepository,
		now:                time.Now,
	}
}

func (s *activityService) LogView(ctx context.Context, userID string, entityType string, entityID string) error {
	if entityType == "" {
		entityType = domain.EntityTypeDish
	}
	if entityType != domain.EntityTypeDish && entityType != domain.EntityTypeRecipe {
		return domain.ErrInvalidEntityType
	}
	if !primitive.IsValidObjectID(entityID) {
		return domain.ErrInvalidID
	}

	entry := entities.ViewedEntry{
		Type:     entityType,
		ID:       entityID,
		ViewedAt: s.now().UTC(),
	}
	if err := s.activityRepository.PushViewed(ctx, userID, entry, entities.MaxViewedHistory); err != nil {
		return domain.DependencyFailure(domain.MessageFailedLogView, err)
	}
	return nil
}

func (s *activityService) AddCooked(ctx context.Context, userID string, dishID string) error {
	if !primitive.IsValidObjectID(dishID) {
		return domain.ErrInvalidID
	}
	if err := s.activityRepository.AddCooked(ctx, userID, dishID); err != nil {
		return domain.DependencyFailure(domain.MessageFailedAddCooked, err)
	}
	return nil
}

func (s *activityService) GetActivity(ctx context.Context, userID string) (domain.ActivityResponse, error) {
	activity, err := s.activityRepository.GetActivity(ctx, userID)
	if err != nil {
		if !errors.Is(err, entities.ErrRecordNotFound) {
			return domain.ActivityResponse{}, domain.DependencyFailure(domain.MessageFailedGetActivity, err)
		}
		activity = entities.NewUserActivity(userID)
	}

	return domain.ActivityResponse{
		FavoriteDishes: nonNil(activity.FavoriteDishes),
		CookedDishes:   nonNil(activity.CookedDishes),
		ViewedDishes:   toViewedResponses(activity.ViewedDishes, len(activity.ViewedDishes)),
		CreatedRecipes: nonNil(activity.CreatedRecipes),
		CreatedDishes:  nonNil(activity.CreatedDishes),
	}, nil
}

func (s *activityService) GetViewed(ctx context.Context, userID string, limit int) ([]domain.ViewedEntryResponse, error) {
	if limit <= 0 || limit > entities.MaxViewedHistory {
		limit = entities.MaxViewedHistory
	}
	activity, err := s.GetActivity(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(activity.ViewedDishes) > limit {
		return activity.ViewedDishes[:limit], nil
	}
	return activity.ViewedDishes, nil
}

func toViewedResponses(entries []entities.ViewedEntry, limit int) []domain.ViewedEntryResponse {
	out := make([]domain.ViewedEntryResponse, 0, limit)
	for i, e := range entries {
		if i >= limit {
			break
		}
		out = append(out, domain.ViewedEntryResponse{Type: e.Type, ID: e.ID, ViewedAt: e.ViewedAt})
	}
	return out
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
