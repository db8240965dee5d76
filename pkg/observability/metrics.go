package observability

import (
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the converter collectors.
type Metrics struct {
	Promotions *prometheus.CounterVec
	Paths      *prometheus.CounterVec
	Samples    *prometheus.HistogramVec
	Failures   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Promotions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_promotions_total",
				Help: "Value nodes promoted to animated tracks, by prior state",
			},
			[]string{"from", "anim_type"},
		),
		Paths: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_paths_generated_total",
				Help: "Paths generated, by generator and transform mode",
			},
			[]string{"generator", "transform_axis"},
		),
		Samples: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waypoint_path_samples",
				Help:    "Number of samples per generated path",
				Buckets: prometheus.ExponentialBuckets(2, 2, 8),
			},
			[]string{"generator"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_param_failures_total",
				Help: "Parameters that could not be converted, by layer type",
			},
			[]string{"layer_type"},
		),
	}
	reg.MustRegister(m.Promotions, m.Paths, m.Samples, m.Failures)
	return m
}

// Hooks returns converter hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnPromote: func(e *domain.ParamEvent) {
			m.Promotions.WithLabelValues(e.State.String(), e.AnimType).Inc()
		},
		OnPathGenerated: func(e *domain.ParamEvent) {
			axis := "false"
			if e.TransformAxis {
				axis = "true"
			}
			m.Paths.WithLabelValues(e.Generator, axis).Inc()
			m.Samples.WithLabelValues(e.Generator).Observe(float64(e.Samples))
		},
		OnFailure: func(e *domain.ParamEvent) {
			m.Failures.WithLabelValues(e.LayerType).Inc()
		},
	}
}
