package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/perkmart/perkmart/internal/usecase"
)

// Reconciler exposes the subset of application functionality required by the worker.
type Reconciler interface {
	MatchPending(ctx context.Context) (usecase.MatchReport, error)
}

// Matcher drives periodic reconciliation of pending withdrawals against the
// code inventory. The scheduler gives no overlap guarantee, so the tick body
// is guarded: a tick firing while the previous one still runs is skipped.
type Matcher struct {
	reconciler Reconciler
	interval   time.Duration
	logger     *slog.Logger

	tickMu sync.Mutex
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewMatcher constructs the reconciliation worker.
func NewMatcher(reconciler Reconciler, interval time.Duration, logger *slog.Logger) *Matcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Matcher{
		reconciler: reconciler,
		interval:   interval,
		logger:     logger,
	}
}

// Start launches background reconciliation.
func (m *Matcher) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go m.run(runCtx)
}

// Stop waits for the current tick to finish.
func (m *Matcher) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *Matcher) run(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick runs one reconciliation pass unless another is already in flight.
// Returns false when the pass was skipped because of an active one.
func (m *Matcher) Tick(ctx context.Context) bool {
	if !m.tickMu.TryLock() {
		m.logger.Warn("reconciliation tick skipped, previous tick still running")
		return false
	}
	defer m.tickMu.Unlock()

	report, err := m.reconciler.MatchPending(ctx)
	if err != nil {
		m.logger.Error("reconciliation pass failed", slog.String("error", err.Error()))
		return true
	}

	if report.Scanned > 0 {
		m.logger.Info("reconciliation pass finished",
			slog.Int("scanned", report.Scanned),
			slog.Int("deferred", report.Deferred),
			slog.Int("matched", report.Matched),
			slog.Int("failed", report.Failed),
		)
	}
	return true
}
