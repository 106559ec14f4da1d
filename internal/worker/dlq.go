package worker

// Jobs that exhaust their retries are parked on a per-queue dead-letter
// list ("dlq:" + source queue) together with enough context to replay
// them by hand after the underlying fault is fixed.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// FailedJob is the entry stored on a dead-letter list.
type FailedJob struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Cause    string          `json:"cause"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

func deadLetterKey(queue string) string { return "dlq:" + queue }

// parkFailedJob moves an exhausted job onto its queue's dead-letter list.
// Errors are logged, not returned: a job past its retries has nowhere
// else to go.
func parkFailedJob(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, cause string, attempts int) {
	entry, err := json.Marshal(FailedJob{
		Queue:    queue,
		Type:     jobType,
		Payload:  payload,
		Cause:    cause,
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead-letter: marshal failed")
		return
	}
	if err := rdb.LPush(ctx, deadLetterKey(queue), entry).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead-letter: push failed")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("type", jobType).
		Str("cause", cause).
		Int("attempts", attempts).
		Msg("job parked on dead-letter list")
}

// DeadLetterCount reports how many jobs are parked for a queue.
func DeadLetterCount(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, deadLetterKey(queue)).Result()
}
