package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the render service exposes.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Resolver layer
	ResolveRequestsTotal CounterVec
	ResolveDuration      HistogramVec
	SDFFetchTotal        CounterVec

	// Cache layer
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// Render pipeline
	RendersTotal        CounterVec
	RenderDuration      HistogramVec
	RenderOutputBytes   HistogramVec
	OrientationBranches CounterVec

	// Storage layer
	ArtifactUploadsTotal CounterVec
	ArtifactUploadBytes  HistogramVec

	// System health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultRenderDurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 15, 30}
	DefaultSizeBuckets           = []float64{1000, 10000, 50000, 100000, 500000, 1000000, 5000000}
)

// NewAppMetrics registers all application metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method")

	m.ResolveRequestsTotal = collector.RegisterCounter("resolve_requests_total", "Compound resolution requests", "kind", "status")
	m.ResolveDuration = collector.RegisterHistogram("resolve_duration_seconds", "Compound resolution duration", DefaultHTTPDurationBuckets, "kind")
	m.SDFFetchTotal = collector.RegisterCounter("sdf_fetch_total", "Structure record fetches", "record_type", "status")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.RendersTotal = collector.RegisterCounter("renders_total", "Molecule renders", "mode", "style", "status")
	m.RenderDuration = collector.RegisterHistogram("render_duration_seconds", "Render duration", DefaultRenderDurationBuckets, "mode")
	m.RenderOutputBytes = collector.RegisterHistogram("render_output_bytes", "Render output size", DefaultSizeBuckets, "mode")
	m.OrientationBranches = collector.RegisterCounter("orientation_branches_total", "Canonical orientation branch taken", "branch", "succeeded")

	m.ArtifactUploadsTotal = collector.RegisterCounter("artifact_uploads_total", "Artifact uploads", "status")
	m.ArtifactUploadBytes = collector.RegisterHistogram("artifact_upload_bytes", "Artifact upload size", DefaultSizeBuckets)

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_code")

	return m
}

// ─── Recording helpers ──────────────────────────────────────────────────────
//
// All helpers accept a nil *AppMetrics so callers wired without metrics
// (tests, the CLI) need no guards.

func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	status := strconv.Itoa(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordResolve(m *AppMetrics, kind string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.ResolveRequestsTotal.WithLabelValues(kind, statusLabel(success)).Inc()
	m.ResolveDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func RecordRender(m *AppMetrics, mode, style string, success bool, duration time.Duration, outputBytes int) {
	if m == nil {
		return
	}
	m.RendersTotal.WithLabelValues(mode, style, statusLabel(success)).Inc()
	m.RenderDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if success {
		m.RenderOutputBytes.WithLabelValues(mode).Observe(float64(outputBytes))
	}
}

func RecordOrientation(m *AppMetrics, branch string, succeeded bool) {
	if m == nil {
		return
	}
	m.OrientationBranches.WithLabelValues(branch, strconv.FormatBool(succeeded)).Inc()
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordError(m *AppMetrics, component, errorCode string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, errorCode).Inc()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
