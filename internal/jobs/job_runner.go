package jobs

import (
	"librarium-backend/internal/config"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds the service dependencies the jobs need.
type Services struct {
	Overdue service.OverdueQueryService
	Email   service.EmailService
}

func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs every nightly job once, for manual execution.
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.SendOverdueReminders()
	jr.ReportOverdueLoans()
}
