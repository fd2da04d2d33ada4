package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP, cache, store and generation activity.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	dbQueryDuration *prometheus.HistogramVec

	generationRuns     *prometheus.CounterVec
	generationDuration prometheus.Observer
	generationWarnings *prometheus.CounterVec
	timetableEntries   prometheus.Gauge

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	generationRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generation_runs_total",
		Help: "Timetable generation runs by outcome",
	}, []string{"outcome"})

	generationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Duration of timetable generation including persistence",
		Buckets: prometheus.DefBuckets,
	})

	generationWarnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generation_warnings_total",
		Help: "Courses skipped during generation by reason",
	}, []string{"reason"})

	timetableEntries := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_entries",
		Help: "Number of entries in the last persisted timetable",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal,
		cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		dbQueryDuration,
		generationRuns, generationDuration, generationWarnings, timetableEntries,
		goroutines,
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:           registry,
		handler:            handler,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		cacheLatency:       cacheLatency,
		cacheWrite:         cacheWrite,
		cacheHitRatio:      cacheHitRatio,
		cacheHits:          cacheHits,
		cacheMisses:        cacheMisses,
		dbQueryDuration:    dbQueryDuration,
		generationRuns:     generationRuns,
		generationDuration: generationDuration,
		generationWarnings: generationWarnings,
		timetableEntries:   timetableEntries,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil || m.cacheWrite == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records data store call timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// ObserveGeneration records one generation run and its outcome.
func (m *MetricsService) ObserveGeneration(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationRuns.WithLabelValues(outcome).Inc()
	m.generationDuration.Observe(duration.Seconds())
}

// RecordGenerationWarning counts a course skipped for reason.
func (m *MetricsService) RecordGenerationWarning(reason string) {
	if m == nil {
		return
	}
	m.generationWarnings.WithLabelValues(reason).Inc()
}

// SetTimetableEntries tracks the size of the persisted timetable.
func (m *MetricsService) SetTimetableEntries(count int) {
	if m == nil {
		return
	}
	m.timetableEntries.Set(float64(count))
}
