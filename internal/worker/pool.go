package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueInventory = "jobs:inventory"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes one dequeued job payload.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into a Redis list.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// Enqueue pushes a job envelope onto the inventory queue.
func (d *Dispatcher) Enqueue(ctx context.Context, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueInventory, encoded).Err()
}

// Pool consumes the queue with a fixed number of goroutines.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
}

func NewPool(rdb *redis.Client) *Pool {
	return &Pool{rdb: rdb, handlers: make(map[string]Handler)}
}

func (p *Pool) Register(jobType string, h Handler) {
	p.handlers[jobType] = h
}

// Start launches numWorkers goroutines. Each blocks on BRPOP — zero CPU when
// idle — and loops every few seconds to notice context cancellation.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueInventory).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[1])
		}
	}
}

func (p *Pool) process(ctx context.Context, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}

	handler, ok := p.handlers[job.Type]
	if !ok {
		log.Warn().Str("type", job.Type).Msg("no handler registered for job")
		return
	}
	if err := handler(ctx, job.Payload); err != nil {
		log.Error().Str("type", job.Type).Err(err).Msg("job failed")
		return
	}
	log.Info().Str("type", job.Type).Msg("job processed")
}
