package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation so cache
	// degradation is visible even though handlers fail open.
	RedisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibeshare_redis_errors_total",
			Help: "Total number of Redis command errors",
		},
		[]string{"operation"},
	)

	// AdFetches counts calls to the upstream ad feed by result.
	AdFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibeshare_ad_fetches_total",
			Help: "Total number of upstream ad feed fetches",
		},
		[]string{"result"},
	)

	// MediaUploads counts uploads to the media host by result.
	MediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibeshare_media_uploads_total",
			Help: "Total number of media uploads",
		},
		[]string{"result"},
	)
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics sets up the Prometheus HTTP metrics collector. The caller
// registers the /metrics endpoint when wiring routes. The collector is
// created once per process; the service name registers with the default
// Prometheus registry and cannot be registered twice.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns the request instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
