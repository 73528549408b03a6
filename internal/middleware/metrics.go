package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karmalama_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// BookingTransitions counts booking state machine transitions by outcome.
	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karmalama_booking_transitions_total",
		Help: "Total booking status transitions by target status and outcome",
	}, []string{"status", "outcome"})

	// PointsAwarded counts karma points granted to users.
	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "karmalama_points_awarded_total",
		Help: "Total karma points awarded across all users",
	})

	// LevelUps counts level transitions resulting from point awards.
	LevelUps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "karmalama_level_ups_total",
		Help: "Total number of user level-up events",
	})

	// WebSocketDrops counts event messages dropped on the way to a client.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karmalama_websocket_drops_total",
		Help: "Total websocket messages dropped by reason",
	}, []string{"reason"})

	// ActiveWebSockets tracks currently open websocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "karmalama_active_websockets",
		Help: "Number of currently open websocket connections",
	})
)

// InitMetrics creates the fiberprometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request instrumentation handler for the app.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
