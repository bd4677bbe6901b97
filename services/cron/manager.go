package cron

import (
	"context"
	"time"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/services/storage"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
	"github.com/robfig/cron/v3"
)

// Job names as recorded in cron_job_logs
const (
	JobUsageStatistics  = "usage_statistics"
	JobDependencyHealth = "dependency_health"
)

// jobFunc does the work of one run and returns a summary message and optional metadata
type jobFunc func(ctx context.Context) (string, interface{}, error)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron    *cron.Cron
	store   database.Storage
	objects storage.ObjectStore
	log     *applog.Logger
	timeout time.Duration
}

// NewCronManager creates a new cron manager. objects may be nil when storage is not configured.
func NewCronManager(store database.Storage, objects storage.ObjectStore, log *applog.Logger) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:    c,
		store:   store,
		objects: objects,
		log:     log.With("component", "CronManager"),
		timeout: 5 * time.Minute,
	}
}

// Start registers all jobs and starts the scheduler
func (m *CronManager) Start() error {
	m.log.Info("Starting cron jobs")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	m.log.Info("Cron jobs started successfully", "jobs", len(m.cron.Entries()))
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (m *CronManager) Stop() {
	m.log.Info("Stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every hour: snapshot usage statistics
	_, err := m.cron.AddFunc("0 0 * * * *", func() {
		m.RunJob(JobUsageStatistics, m.AggregateUsageStatistics)
	})
	if err != nil {
		return err
	}

	// Every 15 minutes: check the database and object storage
	_, err = m.cron.AddFunc("0 */15 * * * *", func() {
		m.RunJob(JobDependencyHealth, m.CheckDependencies)
	})
	if err != nil {
		return err
	}

	return nil
}

// RunJob executes fn once and records the run in cron_job_logs
func (m *CronManager) RunJob(jobName string, fn jobFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.log.Info("[CRON] Starting job", "job", jobName)

	entry, err := m.store.StartCronJob(ctx, jobName)
	if err != nil {
		m.log.Error("[CRON] Failed to record job start", "job", jobName, "error", err)
	}

	message, metadata, jobErr := fn(ctx)
	if jobErr != nil {
		m.log.Error("[CRON] Job failed", "job", jobName, "error", jobErr)
	} else {
		m.log.Info("[CRON] Completed job", "job", jobName, "message", message)
	}

	if entry == nil {
		return
	}
	if err := m.store.FinishCronJob(ctx, entry, message, metadata, jobErr); err != nil {
		m.log.Error("[CRON] Failed to record job completion", "job", jobName, "error", err)
	}
}
