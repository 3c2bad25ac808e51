package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key under which the dashboard keeps the last good population snapshot.
const EstadisticasCuyesKey = "granja:estadisticas:cuyes"

// Retention for cached snapshots. Long on purpose: a stale snapshot beats a
// 503 when the database is struggling.
const EstadisticasTTL = 24 * time.Hour

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
