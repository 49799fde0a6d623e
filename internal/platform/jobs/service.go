// Package jobs runs the background digest scheduler: a single worker
// drains a bounded queue, and tickers enqueue the tenure and celebration
// digests once per calendar day inside the configured send hour.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dragondrop/internal/domain/celebrations"
	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/tenure"
	"dragondrop/internal/platform/config"
	"dragondrop/internal/platform/metrics"
)

const (
	JobTenureDigest      = "tenure_digest"
	JobCelebrationDigest = "celebration_digest"
)

// Lister supplies the employee snapshot each digest run scans.
type Lister interface {
	List(ctx context.Context) ([]employee.Employee, error)
}

type Service struct {
	employees    Lister
	tenure       *tenure.Service
	celebrations *celebrations.Service
	cfg          config.Config
	metrics      *metrics.Collector
	queue        chan job

	mu       sync.Mutex
	lastSent map[string]time.Time
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(employees Lister, tenureSvc *tenure.Service, celebrationsSvc *celebrations.Service, cfg config.Config, collector *metrics.Collector) *Service {
	return &Service{
		employees:    employees,
		tenure:       tenureSvc,
		celebrations: celebrationsSvc,
		cfg:          cfg,
		metrics:      collector,
		queue:        make(chan job, 128),
		lastSent:     map[string]time.Time{},
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.cfg.DigestInterval > 0 {
		go s.scheduleDigests(ctx, s.cfg.DigestInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

// RunNow executes a digest immediately, bypassing the send-hour gate. The
// notification endpoints use it for manual triggers.
func (s *Service) RunNow(ctx context.Context, jobType string) (any, error) {
	switch jobType {
	case JobTenureDigest:
		return s.runTenureDigest(ctx, time.Now().UTC())
	case JobCelebrationDigest:
		return s.runCelebrationDigest(ctx, time.Now().UTC())
	}
	return nil, fmt.Errorf("unknown job type %q", jobType)
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := j.Run(ctx); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) scheduleDigests(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			if s.shouldSend(JobTenureDigest, now) {
				s.markSent(JobTenureDigest, now)
				s.Enqueue(JobTenureDigest, func(ctx context.Context) (any, error) {
					return s.runTenureDigest(ctx, now)
				})
			}
			if s.shouldSend(JobCelebrationDigest, now) {
				s.markSent(JobCelebrationDigest, now)
				s.Enqueue(JobCelebrationDigest, func(ctx context.Context) (any, error) {
					return s.runCelebrationDigest(ctx, now)
				})
			}
		}
	}
}

func (s *Service) shouldSend(jobType string, now time.Time) bool {
	s.mu.Lock()
	last := s.lastSent[jobType]
	s.mu.Unlock()
	return tenure.ShouldSendAlerts(now, last, s.cfg.DigestSendHour)
}

func (s *Service) markSent(jobType string, now time.Time) {
	s.mu.Lock()
	s.lastSent[jobType] = now
	s.mu.Unlock()
}

func (s *Service) runTenureDigest(ctx context.Context, now time.Time) (any, error) {
	emps, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	alerts := tenure.UpcomingAlerts(emps, "", now)
	if len(alerts) == 0 {
		return map[string]any{"alerts": 0, "sent": false}, nil
	}

	err = s.tenure.SendAlerts(ctx, alerts)
	if s.metrics != nil {
		s.metrics.RecordDigest(err == nil)
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"alerts": len(alerts), "sent": true}, nil
}

func (s *Service) runCelebrationDigest(ctx context.Context, now time.Time) (any, error) {
	emps, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	res := s.celebrations.SendNotifications(ctx, emps, celebrations.Config{
		Channel:              s.cfg.ChatChannel,
		BirthdaysEnabled:     s.cfg.BirthdaysEnabled,
		AnniversariesEnabled: s.cfg.AnniversaryEnabled,
		AdvanceNoticeDays:    s.cfg.AdvanceNoticeDays,
	}, now)
	if s.metrics != nil && len(res.Alerts) > 0 {
		s.metrics.RecordDigest(res.Success)
	}
	if !res.Success {
		return nil, fmt.Errorf("celebration digest: %s", res.Message)
	}
	return map[string]any{"alerts": len(res.Alerts), "message": res.Message}, nil
}
