package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name. Cache misses
// (redis.Nil) are not errors and are excluded at the hook.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "devconnect_redis_errors_total",
		Help: "Total number of Redis command errors.",
	},
	[]string{"command"},
)
