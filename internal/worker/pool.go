package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueRecepciones = "jobs:recepciones"
	QueueAvisos      = "jobs:avisos"

	// MaxJobAttempts before a job is moved to the dead letter queue.
	MaxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes the payload of one job. Returning an error retries the
// job; wrap it with Permanent to skip the retries.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying (bad payload, missing entity).
func Permanent(err error) error { return permanentError{err: err} }

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// RecepcionRegistrada queues the constancia of a received traslado.
func (d *Dispatcher) RecepcionRegistrada(ctx context.Context, trasladoID uuid.UUID) error {
	return d.enqueue(ctx, QueueRecepciones, "recepcion", RecepcionJobPayload{TrasladoID: trasladoID.String()})
}

// EnqueueAviso queues an alert email.
func (d *Dispatcher) EnqueueAviso(ctx context.Context, p AvisoJobPayload) error {
	return d.enqueue(ctx, QueueAvisos, "aviso", p)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return push(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers maps each queue to its handler. A nil handler leaves its
// queue unconsumed.
type WorkerHandlers struct {
	Recepcion Handler
	Aviso     Handler
}

func (h *WorkerHandlers) forQueue(queue string) Handler {
	switch queue {
	case QueueRecepciones:
		return h.Recepcion
	case QueueAvisos:
		return h.Aviso
	}
	return nil
}

func (h *WorkerHandlers) queues() []string {
	var qs []string
	if h.Recepcion != nil {
		qs = append(qs, QueueRecepciones)
	}
	if h.Aviso != nil {
		qs = append(qs, QueueAvisos)
	}
	return qs
}

// StartWorkerPool launches numWorkers goroutines consuming the handled queues.
// Each goroutine blocks on BRPOP and is idle between jobs.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	queues := handlers.queues()
	if len(queues) == 0 {
		log.Warn().Msg("worker pool: no handlers configured")
		return
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, queues, i)
	}
	log.Info().Strs("queues", queues).Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queues []string, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			ProcessJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

// ProcessJob runs one raw job popped from queue. Failures are requeued until
// MaxJobAttempts; permanent failures and exhausted jobs go to the DLQ.
func ProcessJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, Job{Type: "desconocido", Payload: json.RawMessage(fmt.Sprintf("%q", raw))}, "invalid envelope: "+err.Error())
		return
	}

	h := handlers.forQueue(queue)
	if h == nil {
		log.Error().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue")
		return
	}

	job.Attempts++
	err := h.Process(ctx, job.Payload)
	if err == nil {
		log.Debug().Str("type", job.Type).Str("queue", queue).Int("attempt", job.Attempts).Msg("job processed")
		return
	}

	var perm permanentError
	if errors.As(err, &perm) || job.Attempts >= MaxJobAttempts {
		SendToDLQ(ctx, rdb, queue, job, err.Error())
		return
	}

	log.Warn().Err(err).Str("type", job.Type).Str("queue", queue).Int("attempt", job.Attempts).Msg("job failed, requeued")
	if err := push(ctx, rdb, queue, job); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("requeue failed")
	}
}
