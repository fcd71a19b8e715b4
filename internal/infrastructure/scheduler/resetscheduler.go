// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"sync"
	"time"

	voteusecases "quokkalist/internal/application/vote/usecases"
	"quokkalist/internal/shared/logger"
)

// ResetScheduler sweeps the monthly likes reset on an interval. The reset
// itself is lazy (every vote triggers the check), so the sweep only exists
// to catch a month boundary crossed while nobody votes.
type ResetScheduler struct {
	reset    *voteusecases.EnsureMonthlyResetUseCase
	interval time.Duration
	logger   logger.Interface
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewResetScheduler(reset *voteusecases.EnsureMonthlyResetUseCase, interval time.Duration, log logger.Interface) *ResetScheduler {
	return &ResetScheduler{
		reset:    reset,
		interval: interval,
		logger:   log.Named("scheduler"),
		stopChan: make(chan struct{}),
	}
}

func (s *ResetScheduler) Start() {
	s.wg.Add(1)
	go s.run()
	s.logger.Infow("reset scheduler started", "interval", s.interval)
}

func (s *ResetScheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
	s.logger.Infow("reset scheduler stopped")
}

func (s *ResetScheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			return
		}
	}
}

func (s *ResetScheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := s.reset.Execute(ctx)
	if err != nil {
		s.logger.Errorw("reset sweep failed", "error", err)
		return
	}
	if result.ResetPerformed {
		s.logger.Infow("reset sweep performed monthly reset")
	}
}
