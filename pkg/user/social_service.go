package user

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/pkg/notification"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type (
	SocialService interface {
		Follow(ctx context.Context, followerID string, targetID string) (domain.FollowResponse, error)
		Unfollow(ctx context.Context, followerID string, targetID string) (domain.FollowResponse, error)
		GetSocial(ctx context.Context, userID string) (domain.SocialResponse, error)
	}

	socialService struct {
		userRepository      UserRepository
		socialRepository    SocialRepository
		notificationService notification.NotificationService
		logger              *zap.Logger
	}
)

func NewSocialService(
	userRepository UserRepository,
	socialRepository SocialRepository,
	notificationService notification.NotificationService,
	logger *zap.Logger,
) SocialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &socialService{
		userRepository:      userRepository,
		socialRepository:    socialRepository,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Follow writes the follower's following list first and the target's
// followers list second. A failure between the two is reported, not undone.
func (s *socialService) Follow(ctx context.Context, followerID string, targetID string) (domain.FollowResponse, error) {
	_, target, err := s.resolvePair(ctx, followerID, targetID)
	if err != nil {
		return domain.FollowResponse{}, err
	}

	var (
		added         bool
		followerCount int
	)
	err = domain.TwoPhase(
		func() error {
			if _, err := s.socialRepository.AddFollowing(ctx, followerID, targetID); err != nil {
				return domain.DependencyFailure(domain.MessageFailedFollow, err)
			}
			return nil
		},
		func() error {
			var err error
			added, followerCount, err = s.socialRepository.AddFollower(ctx, targetID, followerID)
			return err
		},
		func(err error) {
			s.logger.Error("follow left asymmetric",
				zap.String("follower_id", followerID),
				zap.String("target_id", targetID),
				zap.Error(err),
			)
		},
	)
	if err != nil {
		return domain.FollowResponse{}, err
	}

	if added && domain.IsMilestone(followerCount) {
		if err := s.notificationService.NotifyFollowerMilestone(ctx, targetID, followerCount); err != nil {
			s.logger.Error("failed to notify follower milestone", zap.String("user_id", targetID), zap.Error(err))
		}
	}

	return domain.FollowResponse{
		Message:       fmt.Sprintf("You are now following %s", target.DisplayID),
		FollowerCount: followerCount,
	}, nil
}

func (s *socialService) Unfollow(ctx context.Context, followerID string, targetID string) (domain.FollowResponse, error) {
	_, target, err := s.resolvePair(ctx, followerID, targetID)
	if err != nil {
		return domain.FollowResponse{}, err
	}

	var followerCount int
	err = domain.TwoPhase(
		func() error {
			if _, err := s.socialRepository.RemoveFollowing(ctx, followerID, targetID); err != nil {
				return domain.DependencyFailure(domain.MessageFailedUnfollow, err)
			}
			return nil
		},
		func() error {
			var err error
			_, followerCount, err = s.socialRepository.RemoveFollower(ctx, targetID, followerID)
			return err
		},
		func(err error) {
			s.logger.Error("unfollow left asymmetric",
				zap.String("follower_id", followerID),
				zap.String("target_id", targetID),
				zap.Error(err),
			)
		},
	)
	if err != nil {
		return domain.FollowResponse{}, err
	}

	return domain.FollowResponse{
		Message:       fmt.Sprintf("You unfollowed %s", target.DisplayID),
		FollowerCount: followerCount,
	}, nil
}

func (s *socialService) GetSocial(ctx context.Context, userID string) (domain.SocialResponse, error) {
	social, err := s.socialRepository.GetSocial(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return domain.SocialResponse{Followers: []string{}, Following: []string{}}, nil
		}
		return domain.SocialResponse{}, domain.DependencyFailure(domain.MessageFailedGetSocial, err)
	}
	return domain.SocialResponse{
		Followers:      nonNil(social.Followers),
		Following:      nonNil(social.Following),
		FollowerCount:  social.FollowerCount,
		FollowingCount: social.FollowingCount,
	}, nil
}

// resolvePair validates both ids, rejects self edges, loads both users and
// makes sure both social records exist before any edge is written.
func (s *socialService) resolvePair(ctx context.Context, followerID string, targetID string) (*entities.User, *entities.User, error) {
	if !primitive.IsValidObjectID(followerID) || !primitive.IsValidObjectID(targetID) {
		return nil, nil, domain.ErrInvalidID
	}
	if followerID == targetID {
		return nil, nil, domain.ErrCannotFollowSelf
	}

	follower, err := s.loadUser(ctx, followerID)
	if err != nil {
		return nil, nil, err
	}
	target, err := s.loadUser(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}

	for _, id := range []string{followerID, targetID} {
		if err := s.socialRepository.InitSocial(ctx, id); err != nil {
			return nil, nil, domain.DependencyFailure(domain.MessageFailedFollow, err)
		}
	}
	return follower, target, nil
}

func (s *socialService) loadUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.DependencyFailure(domain.MessageFailedGetUser, err)
	}
	return user, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
