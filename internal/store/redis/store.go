package redis

import (
	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for bookings, slot occupancy and flight
// view counters.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
