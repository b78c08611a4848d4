package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a dedicated registry so repeated construction in tests never
// collides with the global default registry. A nil *Recorder is a valid no-op.
type Recorder struct {
	registry         *prometheus.Registry
	PostsScraped     prometheus.Counter
	DraftsGenerated  prometheus.Counter
	DraftsRejected   *prometheus.CounterVec
	GenerationErrors prometheus.Counter
	ImagesGenerated  prometheus.Counter
	StageDuration    *prometheus.HistogramVec
}

// New builds a Recorder with every collector registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		PostsScraped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draftline_posts_scraped_total",
			Help: "Posts kept after normalization by the scrape stage",
		}),
		DraftsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draftline_drafts_generated_total",
			Help: "Drafts accepted into the draft store",
		}),
		DraftsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "draftline_drafts_rejected_total",
			Help: "Source posts or drafts rejected, by reason",
		}, []string{"reason"}),
		GenerationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draftline_generation_errors_total",
			Help: "Model calls that failed and skipped their post",
		}),
		ImagesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draftline_images_generated_total",
			Help: "Images written for drafts",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "draftline_stage_duration_seconds",
			Help:    "Stage duration seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
	}
	r.registry.MustRegister(
		r.PostsScraped,
		r.DraftsGenerated,
		r.DraftsRejected,
		r.GenerationErrors,
		r.ImagesGenerated,
		r.StageDuration,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) AddScraped(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.PostsScraped.Add(float64(n))
}

func (r *Recorder) AddGenerated(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.DraftsGenerated.Add(float64(n))
}

func (r *Recorder) IncRejected(reason string) {
	if r == nil {
		return
	}
	r.DraftsRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) IncGenerationError() {
	if r == nil {
		return
	}
	r.GenerationErrors.Inc()
}

func (r *Recorder) IncImage() {
	if r == nil {
		return
	}
	r.ImagesGenerated.Inc()
}

// ObserveStage records how long a stage ran.
func (r *Recorder) ObserveStage(stage string, start time.Time) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes the registry for the node exporter textfile collector.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
