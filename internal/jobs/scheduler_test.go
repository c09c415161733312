package jobs

import (
	"Cook-App-Backend/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCleaner struct {
	calls   int
	deleted int64
	err     error
}

func (c *stubCleaner) Cleanup(ctx context.Context) (domain.CleanupResponse, error) {
	c.calls++
	if _, ok := ctx.Deadline(); !ok {
		return domain.CleanupResponse{}, errors.New("cleanup must run with a deadline")
	}
	return domain.CleanupResponse{DeletedCount: c.deleted}, c.err
}

type jobRun struct {
	job     string
	success bool
}

type stubRecorder struct {
	runs []jobRun
}

func (r *stubRecorder) RecordJob(job string, success bool) {
	r.runs = append(r.runs, jobRun{job, success})
}

func TestRunCleanupRecordsOutcome(t *testing.T) {
	cleaner := &stubCleaner{deleted: 3}
	recorder := &stubRecorder{}
	s := NewScheduler(cleaner, recorder, zap.NewNop())

	s.RunCleanup()
	cleaner.err = errors.New("store down")
	s.RunCleanup()

	assert.Equal(t, 2, cleaner.calls)
	assert.Equal(t, []jobRun{{cleanupJob, true}, {cleanupJob, false}}, recorder.runs)
}

func TestStart(t *testing.T) {
	s := NewScheduler(&stubCleaner{}, nil, nil)

	require.NoError(t, s.Start("off"))
	require.NoError(t, s.Start(""))
	assert.Empty(t, s.cron.Entries())

	assert.Error(t, s.Start("every now and then"))

	require.NoError(t, s.Start("@hourly"))
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
