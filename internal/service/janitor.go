package service

import (
	"context"
	"sync"
	"time"

	"github.com/Llayon/fantasy-autobattler-sub008/pkg/logger"
)

// Janitor periodically retires stale waiting entries and purges
// terminal rows. CleanupExpired is also exposed on the service for
// on-demand sweeps; both paths are idempotent.
type Janitor struct {
	svc      *MatchmakingService
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

func NewJanitor(svc *MatchmakingService, interval time.Duration) *Janitor {
	return &Janitor{
		svc:      svc,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (j *Janitor) Start() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	logger.Info("Starting queue janitor", "interval", j.interval)

	j.wg.Add(1)
	go j.loop()
}

func (j *Janitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopChan)
	j.wg.Wait()
	logger.Info("Queue janitor stopped")
}

func (j *Janitor) loop() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// One sweep right away on startup.
	j.sweep()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopChan:
			return
		}
	}
}

func (j *Janitor) sweep() {
	ctx := context.Background()

	if _, err := j.svc.CleanupExpired(ctx); err != nil {
		logger.Error("Janitor failed to expire stale entries", "error", err)
	}

	if _, err := j.svc.PurgeTerminal(ctx); err != nil {
		logger.Error("Janitor failed to purge terminal entries", "error", err)
	}
}
