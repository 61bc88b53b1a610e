package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voxel"

// Metrics holds the renderer's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	chunksTotal        prometheus.Gauge
	chunksVisible      prometheus.Gauge
	drawCommands       prometheus.Gauge
	geometryUsed       prometheus.Gauge
	geometryCapacity   prometheus.Gauge
	allocationFailures prometheus.Counter
	meshQuads          prometheus.Counter
	frameSeconds       prometheus.Histogram
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		chunksTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Chunks with uploaded geometry.",
		}),
		chunksVisible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_visible",
			Help:      "Chunks that passed frustum culling in the last frame.",
		}),
		drawCommands: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "draw_commands",
			Help:      "Indirect draw commands submitted in the last frame.",
		}),
		geometryUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geometry_bytes_used",
			Help:      "Bytes of the geometry buffer handed out so far.",
		}),
		geometryCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geometry_bytes_capacity",
			Help:      "Total size of the geometry buffer in bytes.",
		}),
		allocationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_failures_total",
			Help:      "Mesh uploads rejected because the geometry buffer was full.",
		}),
		meshQuads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mesh_quads_total",
			Help:      "Merged quads uploaded to the geometry buffer.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Wall time of one rendered frame.",
			Buckets:   []float64{0.002, 0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25},
		}),
	}
	m.registry.MustRegister(
		m.chunksTotal, m.chunksVisible, m.drawCommands,
		m.geometryUsed, m.geometryCapacity,
		m.allocationFailures, m.meshQuads, m.frameSeconds,
	)
	return m
}

// ObserveFrame records one frame's batching result and duration.
func (m *Metrics) ObserveFrame(chunks, visible, commands int, frame time.Duration) {
	m.chunksTotal.Set(float64(chunks))
	m.chunksVisible.Set(float64(visible))
	m.drawCommands.Set(float64(commands))
	m.frameSeconds.Observe(frame.Seconds())
}

// ObserveGeometry records allocator usage.
func (m *Metrics) ObserveGeometry(used, capacity uint32) {
	m.geometryUsed.Set(float64(used))
	m.geometryCapacity.Set(float64(capacity))
}

// ObserveUpload counts an uploaded mesh, or a failed allocation.
func (m *Metrics) ObserveUpload(quads int, exhausted bool) {
	if exhausted {
		m.allocationFailures.Inc()
		return
	}
	m.meshQuads.Add(float64(quads))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Server is the optional /metrics HTTP endpoint.
type Server struct {
	srv *http.Server
}

// StartServer starts serving m on addr in the background.
func StartServer(addr string, m *Metrics) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	s := &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
	go func() {
		log.Printf("metrics: serving /metrics on %s", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics: server error: %v", err)
		}
	}()
	return s
}

// Shutdown stops the server, waiting at most until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
