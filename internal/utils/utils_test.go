package utils

import (
	"Cook-App-Backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReminderTimeRule(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(domain.RemindersRequest{Reminders: []string{"07:30", "23:59", "00:00"}}))
	assert.NoError(t, v.Struct(domain.RemindersRequest{Reminders: []string{}}))

	for _, bad := range []string{"7:30", "24:00", "12:60", "noon", ""} {
		assert.Error(t, v.Struct(domain.RemindersRequest{Reminders: []string{bad}}), bad)
	}
}

func TestApplyDefaults(t *testing.T) {
	c := Config{AppPort: "9000"}
	applyDefaults(&c)

	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, "mongo", c.StoreDriver)
	assert.Equal(t, "jwt", c.AuthProvider)
	assert.Equal(t, "@daily", c.CleanupSchedule)
}

func TestGetConfigHelpers(t *testing.T) {
	saved := config
	t.Cleanup(func() { config = saved })

	config = Config{RateLimit: "35", CacheTTL: "soon", AdminEmails: " a@x.io, ,b@x.io "}

	assert.Equal(t, 35, GetConfigInt("RATE_LIMIT", 20))
	assert.Equal(t, 300, GetConfigInt("CACHE_TTL", 300))
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, GetConfigList("ADMIN_EMAILS"))
	assert.Empty(t, GetConfig("NOT_A_KEY"))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger("shouting")
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0))
	assert.False(t, logger.Core().Enabled(-1))
}
