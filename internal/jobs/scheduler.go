package jobs

import (
	"Cook-App-Backend/domain"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const cleanupJob = "dish_cleanup"

type (
	// Cleaner removes dishes without a usable name.
	Cleaner interface {
		Cleanup(ctx context.Context) (domain.CleanupResponse, error)
	}

	JobRecorder interface {
		RecordJob(job string, success bool)
	}

	Scheduler struct {
		cron     *cron.Cron
		cleaner  Cleaner
		recorder JobRecorder
		logger   *zap.Logger
		timeout  time.Duration
	}
)

func NewScheduler(cleaner Cleaner, recorder JobRecorder, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		cleaner:  cleaner,
		recorder: recorder,
		logger:   logger,
		timeout:  5 * time.Minute,
	}
}

// Start registers the cleanup job on spec (a cron expression or a
// descriptor like "@daily") and starts the scheduler. An empty spec
// leaves the scheduler idle.
func (s *Scheduler) Start(spec string) error {
	if spec == "" || spec == "off" {
		s.logger.Info("dish cleanup job disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(spec, s.RunCleanup); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("dish cleanup job scheduled", zap.String("schedule", spec))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) RunCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.cleaner.Cleanup(ctx)
	if s.recorder != nil {
		s.recorder.RecordJob(cleanupJob, err == nil)
	}
	if err != nil {
		s.logger.Error("dish cleanup failed", zap.Error(err))
		return
	}
	s.logger.Info("dish cleanup finished", zap.Int64("deleted", res.DeletedCount))
}
