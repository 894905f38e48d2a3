package cron

import (
	"Quill/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine             *cron.Cron
	metricReconcileJob *job.MetricReconcileJob
}

func NewCronManager(metricReconcileJob *job.MetricReconcileJob) *Manager {
	return &Manager{
		engine:             cron.New(cron.WithSeconds()),
		metricReconcileJob: metricReconcileJob,
	}
}

func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@hourly", s.metricReconcileJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("cron engine starting")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("cron engine stopping")
	s.engine.Stop()
}
