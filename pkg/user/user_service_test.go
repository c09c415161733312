package user

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/internal/metrics"
	"Cook-App-Backend/internal/storage/memory"
	"Cook-App-Backend/pkg/jwt"
	"Cook-App-Backend/pkg/notification"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Enabled() bool { return true }

func (m *recordingMailer) SendMail(to string, _ string, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

type fixture struct {
	store   *memory.Store
	users   UserService
	social  SocialService
	mailer  *recordingMailer
	jwt     jwt.JWTService
	context context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	mailer := &recordingMailer{}
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	notifications := notification.NewNotificationService(store, metrics.Nop{})
	return &fixture{
		store:   store,
		users:   NewUserService(store, store, store, store, store, jwtService, mailer, metrics.Nop{}, zap.NewNop(), "http://localhost"),
		social:  NewSocialService(store, store, notifications, zap.NewNop()),
		mailer:  mailer,
		jwt:     jwtService,
		context: context.Background(),
	}
}

func (f *fixture) provision(t *testing.T, email string) domain.UserResponse {
	t.Helper()
	u, err := f.users.GetOrCreateUser(f.context, domain.Claims{Email: email, SubjectID: "sub-" + email})
	require.NoError(t, err)
	return u
}

func TestGetOrCreateUser(t *testing.T) {
	f := newFixture(t)

	first := f.provision(t, "Alice@Example.com")
	assert.Equal(t, "alice@example.com", first.Email)
	assert.Equal(t, "alice", first.DisplayID)

	again := f.provision(t, "alice@example.com")
	assert.Equal(t, first.ID, again.ID)

	second := f.provision(t, "alice@other.org")
	third := f.provision(t, "alice@third.net")
	assert.Equal(t, "alice1", second.DisplayID)
	assert.Equal(t, "alice2", third.DisplayID)

	social, err := f.store.GetSocial(f.context, first.ID)
	require.NoError(t, err)
	assert.Empty(t, social.Followers)
	_, err = f.store.GetActivity(f.context, first.ID)
	require.NoError(t, err)
	_, err = f.store.GetNotifications(f.context, first.ID)
	require.NoError(t, err)
	_, err = f.store.GetPreferences(f.context, first.ID)
	require.NoError(t, err)
}

func TestGetOrCreateUserRequiresEmail(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.GetOrCreateUser(f.context, domain.Claims{SubjectID: "x"})
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	res, err := f.users.Register(f.context, domain.RegisterRequest{Email: "bob@example.com", Password: "hunter22", Name: "Bob"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "bob", res.User.DisplayID)
	assert.Equal(t, []string{"bob@example.com"}, f.mailer.sent)

	claims, err := f.jwt.VerifyToken(f.context, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", claims.Email)

	_, err = f.users.Register(f.context, domain.RegisterRequest{Email: "BOB@example.com", Password: "another1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	login, err := f.users.Login(f.context, domain.LoginRequest{Email: "bob@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = f.users.Login(f.context, domain.LoginRequest{Email: "bob@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.users.Login(f.context, domain.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginRejectsProviderOnlyAccount(t *testing.T) {
	f := newFixture(t)
	f.provision(t, "carol@example.com")

	_, err := f.users.Login(f.context, domain.LoginRequest{Email: "carol@example.com", Password: "anything"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	u := f.provision(t, "dave@example.com")

	got, err := f.users.GetUser(f.context, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave", got.DisplayID)

	_, err = f.users.GetUser(f.context, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = f.users.GetUser(f.context, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	erin := f.provision(t, "erin@example.com")
	f.provision(t, "frank@example.com")

	bio := "home cook"
	updated, err := f.users.UpdateProfile(f.context, erin.ID, domain.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "home cook", updated.Bio)
	assert.Equal(t, "erin@example.com", updated.Email)

	_, err = f.users.UpdateProfile(f.context, erin.ID, domain.UpdateProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyProfileUpdate)

	taken := "frank"
	_, err = f.users.UpdateProfile(f.context, erin.ID, domain.UpdateProfileRequest{DisplayID: &taken})
	assert.ErrorIs(t, err, domain.ErrDisplayIDTaken)

	own := " erin "
	updated, err = f.users.UpdateProfile(f.context, erin.ID, domain.UpdateProfileRequest{DisplayID: &own})
	require.NoError(t, err)
	assert.Equal(t, "erin", updated.DisplayID)

	blank := "  "
	_, err = f.users.UpdateProfile(f.context, erin.ID, domain.UpdateProfileRequest{DisplayID: &blank})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSearchUsers(t *testing.T) {
	f := newFixture(t)
	me := f.provision(t, "chef@example.com")
	for i := 0; i < 25; i++ {
		f.provision(t, fmt.Sprintf("chef%02d@example.com", i))
	}
	f.provision(t, "baker@example.com")

	found, err := f.users.SearchUsers(f.context, "CHEF", me.ID, 100)
	require.NoError(t, err)
	assert.Len(t, found, domain.MaxUserSearchResults)
	for _, u := range found {
		assert.NotEqual(t, me.ID, u.ID)
		assert.Contains(t, u.DisplayID, "chef")
	}

	_, err = f.users.SearchUsers(f.context, "   ", me.ID, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidQueryString)
}

func TestReminders(t *testing.T) {
	f := newFixture(t)
	u := f.provision(t, "gina@example.com")

	got, err := f.users.GetReminders(f.context, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.users.SetReminders(f.context, u.ID, domain.RemindersRequest{Reminders: []string{"08:00", "19:30"}})
	require.NoError(t, err)

	got, err = f.users.GetReminders(f.context, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "19:30"}, got)

	got, err = f.users.GetReminders(f.context, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, got)
}

type touchCounter struct {
	UserRepository
	touches int
}

func (r *touchCounter) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	r.touches++
	return r.UserRepository.TouchLastLogin(ctx, id, at)
}

func TestLastLoginOnlyMovesOnLoginAndMe(t *testing.T) {
	store := memory.NewStore()
	users := &touchCounter{UserRepository: store}
	svc := NewUserService(users, store, store, store, store, jwt.NewJWTService("test-secret", time.Hour), nil, metrics.Nop{}, zap.NewNop(), "http://localhost")
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "dee@example.com", Password: "secret1"})
	require.NoError(t, err)
	claims := domain.Claims{Email: "dee@example.com", SubjectID: "sub-dee"}

	var me domain.UserResponse
	for i := 0; i < 5; i++ {
		me, err = svc.GetOrCreateUser(ctx, claims)
		require.NoError(t, err)
	}
	assert.Zero(t, users.touches)
	before := me.LastActive

	time.Sleep(2 * time.Millisecond)
	got, err := svc.GetMe(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, users.touches)
	assert.True(t, got.LastActive.After(before))

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "dee@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, 2, users.touches)

	_, err = svc.GetMe(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
