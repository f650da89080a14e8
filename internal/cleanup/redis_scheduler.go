package cleanup

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/rueidis"
)

// RedisScheduler pushes jobs onto a redis list and drains it from a worker
// goroutine, so scheduled compensation survives as long as redis does even
// when the enqueuing request has long since returned. The poll interval
// doubles as the deliberate execution delay.
type RedisScheduler struct {
	client  rueidis.Client
	key     string
	deleter TreeDeleter
	wg      sync.WaitGroup
	stop    chan struct{}
}

func NewRedisScheduler(client rueidis.Client, queueKey string, deleter TreeDeleter, pollInterval time.Duration) *RedisScheduler {
	s := &RedisScheduler{
		client:  client,
		key:     queueKey,
		deleter: deleter,
		stop:    make(chan struct{}),
	}

	s.wg.Add(1)
	go s.worker(pollInterval)

	return s
}

func (s *RedisScheduler) Schedule(job Job) {
	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("cleanup: failed to encode job for prefix %s: %v", job.TaskIDPrefix, err)
		return
	}

	cmd := s.client.B().Rpush().Key(s.key).Element(string(payload)).Build()
	if err := s.client.Do(context.Background(), cmd).Error(); err != nil {
		log.Printf("cleanup: failed to enqueue job for prefix %s: %v", job.TaskIDPrefix, err)
	}
}

func (s *RedisScheduler) worker(pollInterval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.drain()
		case <-s.stop:
			s.drain()
			return
		}
	}
}

func (s *RedisScheduler) drain() {
	ctx := context.Background()

	for {
		cmd := s.client.B().Lpop().Key(s.key).Build()
		payload, err := s.client.Do(ctx, cmd).ToString()
		if err != nil {
			if !rueidis.IsRedisNil(err) {
				log.Printf("cleanup: failed to pop job: %v", err)
			}
			return
		}

		var job Job
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			log.Printf("cleanup: dropping undecodable job: %v", err)
			continue
		}

		Run(ctx, s.deleter, job)
	}
}

func (s *RedisScheduler) Shutdown(ctx context.Context) {
	close(s.stop)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Println("cleanup: worker shutdown timed out")
	}
}
