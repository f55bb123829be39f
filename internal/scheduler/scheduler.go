package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"MarketFetch/internal/runner"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the fetch job on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Runner  *runner.Runner
	Ctx     context.Context
	running atomic.Bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r *runner.Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: r,
		Ctx:    ctx,
	}
}

// Register registers the fetch job under the given cron expression.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runJob); err != nil {
		return fmt.Errorf("register fetch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the fetch job immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runJob()
}

// runJob executes one pass. A tick that fires while a pass is still in
// flight is skipped rather than overlapped.
func (s *Scheduler) runJob() {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("[WARN] previous run still in progress, skipping this tick")
		return
	}
	defer s.running.Store(false)

	if _, err := s.Runner.Run(s.Ctx); err != nil {
		log.Printf("[ERROR] scheduled run: %v", err)
	}
}
