package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix namespaces the parking list of each source queue: dlq:{queue}.
const DLQPrefix = "dlq:"

// ParkedJob is a job that burned through its retries, stored with enough
// context to replay it by hand. For stock alerts a parked job means a low
// stock warning was never emailed — worth checking during the day's close.
type ParkedJob struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339, UTC
	Attempts      int             `json:"attempts"`
}

// ParkJob moves an exhausted job onto the queue's parking list. Best-effort:
// a Redis failure here is logged and the job is lost, never retried again.
func ParkJob(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	parked := ParkedJob{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}

	data, err := json.Marshal(parked)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: falha ao serializar job")
		return
	}

	key := DLQPrefix + queue
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("dlq: falha ao estacionar job")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("job esgotou as tentativas, movido para a DLQ")
}

// ParkedCount reports how many jobs are parked for a queue.
func ParkedCount(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
