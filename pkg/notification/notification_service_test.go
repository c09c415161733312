package notification

import (
	"Cook-App-Backend/entities"
	"Cook-App-Backend/internal/storage/memory"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder map[string]int

func (r countingRecorder) RecordEvent(event string) { r[event]++ }

func TestMilestonesAppendAndCountUnread(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	recorder := countingRecorder{}
	svc := NewNotificationService(store, recorder)

	require.NoError(t, store.InitNotifications(ctx, "u1"))
	require.NoError(t, svc.NotifyFollowerMilestone(ctx, "u1", 10))
	require.NoError(t, svc.NotifyFavoriteMilestone(ctx, "u1", "Pho", 5))

	res, err := svc.GetNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, res.Notifications, 2)
	assert.Equal(t, 2, res.UnreadCount)
	assert.Equal(t, "Congratulations! You now have 10 followers", res.Notifications[0].Message)
	assert.Equal(t, `Your dish "Pho" has been favorited 5 times`, res.Notifications[1].Message)
	for _, n := range res.Notifications {
		assert.Equal(t, entities.NotificationMilestone, n.Type)
		assert.False(t, n.Read)
	}
	assert.Equal(t, 2, recorder["notification_milestone"])
}

func TestGetNotificationsForUnknownUser(t *testing.T) {
	svc := NewNotificationService(memory.NewStore(), nil)

	res, err := svc.GetNotifications(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, res.Notifications)
	assert.Empty(t, res.Notifications)
	assert.Zero(t, res.UnreadCount)
}
