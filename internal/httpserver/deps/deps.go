package deps

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/flyee/flights/internal/booking"
	"github.com/flyee/flights/internal/index"
	"github.com/flyee/flights/internal/logger"
	"github.com/flyee/flights/internal/query"
	redisstore "github.com/flyee/flights/internal/store/redis"
)

// Deps is the dependency bag handed to route registrars and handlers.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	FlightIndex *index.FlightIndex
	Flights     *query.Service

	// Booking stack; all nil when the service runs search-only (no Redis).
	Bookings    *booking.Service
	Store       *redisstore.Store
	RedisClient *goredis.Client

	ReloadTrigger chan struct{} // manual dataset reload

	AdminCIDRs  []string // restrict /api/reload; empty = open
	TrustProxy  bool
	CORSOrigins []string

	BookingPerMinute int // rate limit for booking writes, per IP
	BookingBurst     int
}
