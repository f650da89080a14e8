package cleanup

import (
	"context"
	"log"
	"sync"
	"time"
)

// InProcessScheduler runs each job on its own goroutine after a fixed
// delay, retrying once before giving up.
type InProcessScheduler struct {
	deleter TreeDeleter
	delay   time.Duration
	wg      sync.WaitGroup
}

func NewInProcessScheduler(deleter TreeDeleter, delay time.Duration) *InProcessScheduler {
	return &InProcessScheduler{
		deleter: deleter,
		delay:   delay,
	}
}

func (s *InProcessScheduler) Schedule(job Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		time.Sleep(s.delay)
		Run(context.Background(), s.deleter, job)
	}()
}

// Shutdown waits for in-flight jobs or the context, whichever ends first.
func (s *InProcessScheduler) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Println("cleanup: shutdown timed out with jobs in flight")
	}
}

// Run executes one compensation job with a single retry. The delete is
// idempotent, so a duplicate run only re-deletes nothing.
func Run(ctx context.Context, deleter TreeDeleter, job Job) {
	err := deleter.DeleteTaskTree(ctx, job.ProjectID, job.TaskIDPrefix, job.DocIDs)
	if err == nil {
		return
	}

	log.Printf("cleanup: delete for prefix %s failed, retrying once: %v", job.TaskIDPrefix, err)
	if err := deleter.DeleteTaskTree(ctx, job.ProjectID, job.TaskIDPrefix, job.DocIDs); err != nil {
		log.Printf("cleanup: delete for prefix %s abandoned: %v", job.TaskIDPrefix, err)
	}
}
