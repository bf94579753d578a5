// Package metrics holds the Prometheus collectors recorded during a pipeline run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	OutcomeDisplayed = "displayed"
	OutcomeFailed    = "failed"
)

// Metrics bundles Prometheus collectors for one pipeline.
type Metrics struct {
	Registry         *prometheus.Registry
	StageDuration    *prometheus.HistogramVec
	JSONFilesTotal   prometheus.Counter
	ParseWarnings    prometheus.Counter
	BooksTotal       prometheus.Counter
	RunsTotal        *prometheus.CounterVec
	FilesListedTotal prometheus.Counter
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zipshelf_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	filesListed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zipshelf_files_listed_total",
			Help: "Files found in the extraction directory.",
		},
	)
	jsonFiles := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zipshelf_json_files_total",
			Help: "JSON documents selected for parsing.",
		},
	)
	warnings := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zipshelf_parse_warnings_total",
			Help: "JSON documents skipped because they could not be read or parsed.",
		},
	)
	books := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zipshelf_books_total",
			Help: "Normalized books handed to the renderer.",
		},
	)
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zipshelf_runs_total",
			Help: "Pipeline runs by terminal state.",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(stageDuration, filesListed, jsonFiles, warnings, books, runs)

	return &Metrics{
		Registry:         registry,
		StageDuration:    stageDuration,
		FilesListedTotal: filesListed,
		JSONFilesTotal:   jsonFiles,
		ParseWarnings:    warnings,
		BooksTotal:       books,
		RunsTotal:        runs,
	}
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// AddFilesListed counts files returned by the directory walk.
func (m *Metrics) AddFilesListed(n int) {
	if m == nil {
		return
	}
	m.FilesListedTotal.Add(float64(n))
}

// AddJSONFiles counts documents selected for parsing.
func (m *Metrics) AddJSONFiles(n int) {
	if m == nil {
		return
	}
	m.JSONFilesTotal.Add(float64(n))
}

// IncParseWarning counts one skipped document.
func (m *Metrics) IncParseWarning() {
	if m == nil {
		return
	}
	m.ParseWarnings.Inc()
}

// AddBooks counts normalized books.
func (m *Metrics) AddBooks(n int) {
	if m == nil {
		return
	}
	m.BooksTotal.Add(float64(n))
}

// IncRun counts a finished run by outcome.
func (m *Metrics) IncRun(outcome string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
}

// Summary flattens counter values from the registry into name -> value.
// Histograms are reported by their sample sum, labelled series are keyed name{value}.
func (m *Metrics) Summary() (map[string]float64, error) {
	if m == nil {
		return map[string]float64{}, nil
	}

	families, err := m.Registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			out[seriesName(family.GetName(), metric)] = sampleValue(family.GetType(), metric)
		}
	}
	return out, nil
}

func seriesName(name string, metric *dto.Metric) string {
	labels := metric.GetLabel()
	if len(labels) == 0 {
		return name
	}
	return name + "{" + labels[0].GetValue() + "}"
}

func sampleValue(kind dto.MetricType, metric *dto.Metric) float64 {
	switch kind {
	case dto.MetricType_COUNTER:
		return metric.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return metric.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return metric.GetHistogram().GetSampleSum()
	default:
		return 0
	}
}
