package user

import (
	"Cook-App-Backend/domain"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFollowAndUnfollow(t *testing.T) {
	f := newFixture(t)
	alice := f.provision(t, "alice@example.com")
	bob := f.provision(t, "bob@example.com")

	res, err := f.social.Follow(f.context, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "You are now following bob", res.Message)
	assert.Equal(t, 1, res.FollowerCount)

	aliceSocial, err := f.social.GetSocial(f.context, alice.ID)
	require.NoError(t, err)
	bobSocial, err := f.social.GetSocial(f.context, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, aliceSocial.Following)
	assert.Equal(t, 1, aliceSocial.FollowingCount)
	assert.Equal(t, []string{alice.ID}, bobSocial.Followers)
	assert.Equal(t, 1, bobSocial.FollowerCount)

	// following twice changes nothing
	res, err = f.social.Follow(f.context, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FollowerCount)

	res, err = f.social.Unfollow(f.context, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "You unfollowed bob", res.Message)
	assert.Equal(t, 0, res.FollowerCount)

	aliceSocial, _ = f.social.GetSocial(f.context, alice.ID)
	bobSocial, _ = f.social.GetSocial(f.context, bob.ID)
	assert.Empty(t, aliceSocial.Following)
	assert.Empty(t, bobSocial.Followers)

	res, err = f.social.Unfollow(f.context, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.FollowerCount)
}

func TestFollowSelfLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	alice := f.provision(t, "alice@example.com")

	_, err := f.social.Follow(f.context, alice.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrCannotFollowSelf)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	social, err := f.social.GetSocial(f.context, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, social.Followers)
	assert.Empty(t, social.Following)
}

func TestFollowUnknownUsers(t *testing.T) {
	f := newFixture(t)
	alice := f.provision(t, "alice@example.com")

	_, err := f.social.Follow(f.context, alice.ID, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.social.Follow(f.context, alice.ID, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	social, _ := f.social.GetSocial(f.context, alice.ID)
	assert.Empty(t, social.Following)
}

func TestFollowerMilestoneNotifiesOnce(t *testing.T) {
	f := newFixture(t)
	star := f.provision(t, "star@example.com")

	fans := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		fans = append(fans, f.provision(t, fmt.Sprintf("fan%d@example.com", i)).ID)
	}
	for _, fan := range fans {
		_, err := f.social.Follow(f.context, fan, star.ID)
		require.NoError(t, err)
	}
	// a repeated follow at the milestone count must not notify again
	_, err := f.social.Follow(f.context, fans[4], star.ID)
	require.NoError(t, err)

	doc, err := f.store.GetNotifications(f.context, star.ID)
	require.NoError(t, err)
	require.Len(t, doc.Notifications, 1)
	assert.Equal(t, "Congratulations! You now have 5 followers", doc.Notifications[0].Message)
	assert.Equal(t, 1, doc.UnreadCount)
}

func TestGetSocialForUnknownUserIsEmpty(t *testing.T) {
	f := newFixture(t)
	social, err := f.social.GetSocial(f.context, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotNil(t, social.Followers)
	assert.Equal(t, 0, social.FollowerCount)
}
