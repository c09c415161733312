package user

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/metrics"
	"Cook-App-Backend/internal/utils/mailing"
	"Cook-App-Backend/pkg/activity"
	"Cook-App-Backend/pkg/jwt"
	"Cook-App-Backend/pkg/notification"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxProvisionAttempts = 5
	maxDisplayIDSuffix   = 10000
)

type (
	UserService interface {
		GetOrCreateUser(ctx context.Context, claims domain.Claims) (domain.UserResponse, error)
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		GetUser(ctx context.Context, userID string) (domain.UserResponse, error)
		GetMe(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.UserResponse, error)
		SearchUsers(ctx context.Context, query string, excludeUserID string, limit int) ([]domain.UserResponse, error)
		SetReminders(ctx context.Context, userID string, req domain.RemindersRequest) ([]string, error)
		GetReminders(ctx context.Context, userID string) ([]string, error)
	}

	userService struct {
		userRepository         UserRepository
		socialRepository       SocialRepository
		preferenceRepository   PreferenceRepository
		activityRepository     activity.ActivityRepository
		notificationRepository notification.NotificationRepository
		jwtService             jwt.JWTService
		mailer                 mailing.Mailer
		recorder               metrics.Recorder
		logger                 *zap.Logger
		appURL                 string
	}
)

func NewUserService(
	userRepository UserRepository,
	socialRepository SocialRepository,
	preferenceRepository PreferenceRepository,
	activityRepository activity.ActivityRepository,
	notificationRepository notification.NotificationRepository,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	recorder metrics.Recorder,
	logger *zap.Logger,
	appURL string,
) UserService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{
		userRepository:         userRepository,
		socialRepository:       socialRepository,
		preferenceRepository:   preferenceRepository,
		activityRepository:     activityRepository,
		notificationRepository: notificationRepository,
		jwtService:             jwtService,
		mailer:                 mailer,
		recorder:               recorder,
		logger:                 logger,
		appURL:                 appURL,
	}
}

// GetOrCreateUser returns the user owning claims.Email, provisioning one on
// first sight. Duplicate-key races on insert are resolved by looking the
// email up again, or by deriving a fresh display id when the email is free.
func (s *userService) GetOrCreateUser(ctx context.Context, claims domain.Claims) (domain.UserResponse, error) {
	if err := claims.Validate(); err != nil {
		return domain.UserResponse{}, err
	}
	email := normalizeEmail(claims.Email)

	for attempt := 0; attempt < maxProvisionAttempts; attempt++ {
		existing, err := s.userRepository.GetUserByEmail(ctx, email)
		if err == nil {
			return toUserResponse(existing), nil
		}
		if !errors.Is(err, entities.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.DependencyFailure(domain.MessageFailedGetUser, err)
		}

		user := &entities.User{
			Email:       email,
			Name:        claims.DisplayName,
			Avatar:      claims.Avatar,
			FirebaseUID: claims.SubjectID,
		}
		created, err := s.createUser(ctx, user, domain.DeriveDisplayID(email, claims.SubjectID))
		if errors.Is(err, entities.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return domain.UserResponse{}, err
		}
		return toUserResponse(created), nil
	}
	return domain.UserResponse{}, domain.DependencyFailure(domain.MessageFailedGetUser, errors.New("user provisioning kept colliding"))
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	_, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.AuthResponse{}, domain.ErrEmailAlreadyExists
	}
	if !errors.Is(err, entities.ErrRecordNotFound) {
		return domain.AuthResponse{}, domain.DependencyFailure(domain.MessageFailedRegister, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, domain.Wrap(domain.KindInternal, domain.MessageFailedRegister, err)
	}

	var created *entities.User
	for attempt := 0; attempt < maxProvisionAttempts; attempt++ {
		user := &entities.User{
			Email:        email,
			Name:         req.Name,
			PasswordHash: string(hash),
		}
		created, err = s.createUser(ctx, user, domain.DeriveDisplayID(email, ""))
		if err == nil {
			break
		}
		if !errors.Is(err, entities.ErrDuplicateKey) {
			return domain.AuthResponse{}, err
		}
		// the email index or the display id index fired; only the first is a conflict
		if _, lookupErr := s.userRepository.GetUserByEmail(ctx, email); lookupErr == nil {
			return domain.AuthResponse{}, domain.ErrEmailAlreadyExists
		}
	}
	if created == nil {
		return domain.AuthResponse{}, domain.DependencyFailure(domain.MessageFailedRegister, err)
	}

	s.recorder.RecordEvent("user_registered")
	s.sendWelcomeMail(created)
	return s.authResponse(created)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, domain.DependencyFailure(domain.MessageFailedLogin, err)
	}
	if user.PasswordHash == "" {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	s.touchLastLogin(ctx, user)
	return s.authResponse(user)
}

// GetMe is GetUser for the caller's own profile; it also records the visit
// as lastLoginAt.
func (s *userService) GetMe(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	s.touchLastLogin(ctx, user)
	return toUserResponse(user), nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.UserResponse, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return domain.UserResponse{}, err
	}

	patch := entities.ProfileUpdate{
		Name:      req.Name,
		Avatar:    req.Avatar,
		Bio:       req.Bio,
		DisplayID: req.DisplayID,
	}
	if patch.IsEmpty() {
		return domain.UserResponse{}, domain.ErrEmptyProfileUpdate
	}

	if patch.DisplayID != nil {
		displayID := strings.TrimSpace(*patch.DisplayID)
		if displayID == "" {
			return domain.UserResponse{}, domain.NewError(domain.KindValidation, "display id must not be empty")
		}
		patch.DisplayID = &displayID

		taken, err := s.userRepository.DisplayIDExists(ctx, displayID, userID)
		if err != nil {
			return domain.UserResponse{}, domain.DependencyFailure(domain.MessageFailedUpdateUser, err)
		}
		if taken {
			return domain.UserResponse{}, domain.ErrDisplayIDTaken
		}
	}

	updated, err := s.userRepository.UpdateProfile(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrDuplicateKey):
			return domain.UserResponse{}, domain.ErrDisplayIDTaken
		case errors.Is(err, entities.ErrRecordNotFound):
			return domain.UserResponse{}, domain.ErrUserNotFound
		default:
			return domain.UserResponse{}, domain.DependencyFailure(domain.MessageFailedUpdateUser, err)
		}
	}
	return toUserResponse(updated), nil
}

func (s *userService) SearchUsers(ctx context.Context, query string, excludeUserID string, limit int) ([]domain.UserResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQueryString
	}
	if limit <= 0 || limit > domain.MaxUserSearchResults {
		limit = domain.MaxUserSearchResults
	}

	users, err := s.userRepository.SearchUsersByDisplayID(ctx, query, excludeUserID, limit)
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedSearchUsers, err)
	}

	out := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func (s *userService) SetReminders(ctx context.Context, userID string, req domain.RemindersRequest) ([]string, error) {
	reminders := req.Reminders
	if reminders == nil {
		reminders = []string{}
	}
	if err := s.preferenceRepository.SetReminders(ctx, userID, reminders); err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedSetReminders, err)
	}
	return reminders, nil
}

func (s *userService) GetReminders(ctx context.Context, userID string) ([]string, error) {
	prefs, err := s.preferenceRepository.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, domain.DependencyFailure(domain.MessageFailedGetReminders, err)
	}
	if prefs.Reminders == nil {
		return []string{}, nil
	}
	return prefs.Reminders, nil
}

// createUser picks a free display id starting from base, inserts the user and
// initializes its auxiliary records. entities.ErrDuplicateKey is returned
// untouched so callers can retry.
func (s *userService) createUser(ctx context.Context, user *entities.User, base string) (*entities.User, error) {
	displayID, err := s.resolveDisplayID(ctx, base)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.DisplayID = displayID
	user.CreatedAt = now
	user.LastLoginAt = now

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entities.ErrDuplicateKey) {
			return nil, err
		}
		return nil, domain.DependencyFailure("failed to create user", err)
	}

	userID := user.ID.Hex()
	inits := []func(context.Context, string) error{
		s.socialRepository.InitSocial,
		s.activityRepository.InitActivity,
		s.notificationRepository.InitNotifications,
		s.preferenceRepository.InitPreferences,
	}
	for _, initRecord := range inits {
		if err := initRecord(ctx, userID); err != nil {
			// the upserts used by later writes recreate missing records
			s.logger.Error("failed to initialize user records", zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.logger.Info("user created", zap.String("user_id", userID), zap.String("display_id", displayID))
	return user, nil
}

// resolveDisplayID returns base, or base followed by the smallest positive
// integer that makes it unused.
func (s *userService) resolveDisplayID(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 1; i <= maxDisplayIDSuffix; i++ {
		taken, err := s.userRepository.DisplayIDExists(ctx, candidate, "")
		if err != nil {
			return "", domain.DependencyFailure("failed to check display id", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i)
	}
	return "", domain.DependencyFailure("failed to derive display id", errors.New("suffix space exhausted"))
}

func (s *userService) touchLastLogin(ctx context.Context, user *entities.User) {
	now := time.Now().UTC()
	if err := s.userRepository.TouchLastLogin(ctx, user.ID.Hex(), now); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID.Hex()), zap.Error(err))
		return
	}
	user.LastLoginAt = now
}

func (s *userService) findUser(ctx context.Context, userID string) (*entities.User, error) {
	if !primitive.IsValidObjectID(userID) {
		return nil, domain.ErrInvalidID
	}
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.DependencyFailure(domain.MessageFailedGetUser, err)
	}
	return user, nil
}

func (s *userService) authResponse(user *entities.User) (domain.AuthResponse, error) {
	token, err := s.jwtService.GenerateTokenUser(user.ID.Hex(), user.Email, user.Name)
	if err != nil {
		return domain.AuthResponse{}, domain.Wrap(domain.KindInternal, domain.MessageFailedGetToken, err)
	}
	return domain.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *userService) sendWelcomeMail(user *entities.User) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return
	}
	subject, body := mailing.WelcomeMail(user.Name, user.DisplayID, s.appURL)
	if err := s.mailer.SendMail(user.Email, subject, body); err != nil {
		s.logger.Warn("failed to send welcome mail", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:         u.ID.Hex(),
		Email:      u.Email,
		DisplayID:  u.DisplayID,
		Name:       u.Name,
		Avatar:     u.Avatar,
		Bio:        u.Bio,
		CreatedAt:  u.CreatedAt,
		LastActive: u.LastLoginAt,
	}
}
