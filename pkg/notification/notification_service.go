package notification

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/metrics"
	"context"
	"errors"
	"fmt"
	"time"
)

type (
	NotificationService interface {
		NotifyFollowerMilestone(ctx context.Context, userID string, followerCount int) error
		NotifyFavoriteMilestone(ctx context.Context, creatorID string, dishName string, likeCount int) error
		GetNotifications(ctx context.Context, userID string) (domain.NotificationsResponse, error)
	}

	notificationService struct {
		notificationRepository NotificationRepository
		recorder               metrics.Recorder
	}
)

func NewNotificationService(notificationRepository NotificationRepository, recorder metrics.Recorder) NotificationService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &notificationService{
		notificationRepository: notificationRepository,
		recorder:               recorder,
	}
}

func (s *notificationService) NotifyFollowerMilestone(ctx context.Context, userID string, followerCount int) error {
	return s.push(ctx, userID, fmt.Sprintf("Congratulations! You now have %d followers", followerCount))
}

func (s *notificationService) NotifyFavoriteMilestone(ctx context.Context, creatorID string, dishName string, likeCount int) error {
	return s.push(ctx, creatorID, fmt.Sprintf("Your dish %q has been favorited %d times", dishName, likeCount))
}

func (s *notificationService) push(ctx context.Context, userID string, message string) error {
	err := s.notificationRepository.PushNotification(ctx, userID, entities.Notification{
		Type:      entities.NotificationMilestone,
		Message:   message,
		CreatedAt: time.Now().UTC(),
		Read:      false,
	})
	if err != nil {
		return domain.DependencyFailure("failed to store notification", err)
	}
	s.recorder.RecordEvent("notification_milestone")
	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string) (domain.NotificationsResponse, error) {
	doc, err := s.notificationRepository.GetNotifications(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return domain.NotificationsResponse{Notifications: []domain.NotificationResponse{}}, nil
		}
		return domain.NotificationsResponse{}, domain.DependencyFailure(domain.MessageFailedGetNotification, err)
	}

	out := make([]domain.NotificationResponse, 0, len(doc.Notifications))
	for _, n := range doc.Notifications {
		out = append(out, domain.NotificationResponse{
			Type:      n.Type,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
			Read:      n.Read,
		})
	}
	return domain.NotificationsResponse{Notifications: out, UnreadCount: doc.UnreadCount}, nil
}
