package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"inventory-backend/internal/config"
	"inventory-backend/internal/domains/item/job"
	"inventory-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs registers all recurring jobs.
func (s *Scheduler) RegisterJobs() error {
	return s.registerSweepOrphansJob()
}

// Sweep schedule and grace window come from config; hourly with a
// one-hour grace by default. The grace must stay comfortably longer
// than any plausible upload-to-insert gap during item creation.
func (s *Scheduler) registerSweepOrphansJob() error {
	payload, err := json.Marshal(job.SweepOrphansPayload{
		GraceSeconds: int(s.jobConfig.SweepGrace / time.Second),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(job.TypeSweepOrphans, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.SweepSchedule,
		task,
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register SweepOrphans job", err)
		return err
	}

	logger.Info("Registered SweepOrphans job", map[string]interface{}{
		"schedule": s.jobConfig.SweepSchedule,
		"grace":    s.jobConfig.SweepGrace.String(),
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
