// Package scheduler runs the generation pipeline on a fixed interval for
// deployments that want hands-off posting instead of calling the API.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	interval time.Duration
	run      func(ctx context.Context)
}

// New returns a scheduler that calls run every interval. A zero or
// negative interval disables scheduling entirely.
func New(interval time.Duration, run func(ctx context.Context)) *Scheduler {
	return &Scheduler{interval: interval, run: run}
}

// Start launches the loop in a goroutine. It returns immediately; the
// loop stops when ctx is cancelled. The first run happens after one full
// interval, not at startup.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		log.Println("Scheduler disabled (no interval configured)")
		return
	}

	log.Printf("Scheduler started, interval %v", s.interval)
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("Scheduler stopped")
				return
			case <-ticker.C:
				s.run(ctx)
			}
		}
	}()
}
