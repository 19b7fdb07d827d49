package cron

import (
	"Megaphone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	cronSpec      string
	socialSyncJob *job.SocialSyncJob
}

func NewCronManager(cronSpec string, socialSyncJob *job.SocialSyncJob) *Manager {
	if cronSpec == "" {
		cronSpec = "@hourly"
	}
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		cronSpec:      cronSpec,
		socialSyncJob: socialSyncJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.cronSpec, s.socialSyncJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
