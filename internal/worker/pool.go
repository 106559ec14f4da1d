package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueInvoicePDF = "jobs:invoice_pdf"
	QueueEmail      = "jobs:email"
)

// brpopTimeout bounds how long an idle worker blocks before re-checking
// its context.
const brpopTimeout = 5 * time.Second

// Job is the envelope every queued task travels in.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher pushes jobs onto Redis lists for the worker pool to drain.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// Client exposes the underlying Redis client for dead-letter writes.
func (d *Dispatcher) Client() *redis.Client { return d.rdb }

// EnqueueInvoicePDF queues an invoice PDF render.
func (d *Dispatcher) EnqueueInvoicePDF(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueInvoicePDF, "invoice_pdf", payload)
}

// EnqueueEmail queues an outbound invoice mail.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(Job{Type: jobType, Payload: body})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, envelope).Err()
}

// Handlers holds the per-queue job processors.
type Handlers struct {
	InvoicePDF *InvoicePDFWorker
	Email      *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines, each draining both
// queues with a blocking pop. Workers exit when ctx is cancelled.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Int("workers", numWorkers).Msg("worker pool started")
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	for {
		if ctx.Err() != nil {
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		}
		// BRPOP returns [queue, payload]; a timeout just loops back to
		// the ctx check.
		popped, err := rdb.BRPop(ctx, brpopTimeout, QueueInvoicePDF, QueueEmail).Result()
		if err != nil || len(popped) != 2 {
			continue
		}
		processJob(ctx, rdb, handlers, popped[0], popped[1])
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		parkFailedJob(ctx, rdb, queue, "unknown", []byte(raw), "malformed job envelope", 0)
		return
	}
	switch queue {
	case QueueInvoicePDF:
		if handlers.InvoicePDF != nil {
			handlers.InvoicePDF.Process(ctx, job.Payload)
		}
	case QueueEmail:
		if handlers.Email != nil {
			handlers.Email.Process(ctx, job.Payload)
		}
	default:
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue")
	}
}
