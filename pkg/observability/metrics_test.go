package observability_test

import (
	"errors"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()

	promote := domain.NewParamEvent(domain.EventPromote)
	promote.State = domain.StateStatic
	promote.AnimType = domain.TypeReal
	hooks.OnPromote(promote)
	hooks.OnPromote(promote)

	gen := domain.NewParamEvent(domain.EventPathGenerated)
	gen.Generator = "multi"
	gen.TransformAxis = true
	gen.Samples = 2
	hooks.OnPathGenerated(gen)

	fail := domain.NewParamEvent(domain.EventFailure)
	fail.LayerType = "circle"
	fail.Err = errors.New("boom")
	hooks.OnFailure(fail)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Promotions.WithLabelValues("static", domain.TypeReal)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Paths.WithLabelValues("multi", "true")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Paths.WithLabelValues("multi", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("circle")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Samples))
}
