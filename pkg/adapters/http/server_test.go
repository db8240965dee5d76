package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aretw0/waypoint"
	httpAdapter "github.com/aretw0/waypoint/pkg/adapters/http"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scene = `<canvas width="480" height="270" view-box="-4 2.25 4 -2.25" fps="24">
  <layer type="circle" desc="ball">
    <param name="amount"><real value="5.0"/></param>
    <param name="origin"><vector><x>1</x><y>0.5</y></vector></param>
  </layer>
</canvas>`

func newServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	opts := []waypoint.Option{waypoint.WithHooks(metrics.Hooks())}
	handlerOpts := []httpAdapter.Option{httpAdapter.WithGatherer(reg)}
	if withStore {
		store := memory.NewStore()
		opts = append(opts, waypoint.WithStore(store))
		handlerOpts = append(handlerOpts, httpAdapter.WithStore(store))
	}
	conv, err := waypoint.New(opts...)
	require.NoError(t, err)

	handler, err := httpAdapter.NewHandler(conv, handlerOpts...)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, u, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(u, "application/xml", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, u string) *http.Response {
	t.Helper()
	resp, err := http.Get(u)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestConvert_AndBrowseRuns(t *testing.T) {
	srv := newServer(t, true)

	resp := post(t, srv.URL+"/convert", scene)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[waypoint.Result](t, resp)
	require.NotEmpty(t, res.RunID)

	amount, ok := res.Param(0, "amount")
	require.True(t, ok)
	assert.Equal(t, domain.StateStatic, amount.State)
	assert.Equal(t, "0.041666666666666664s", amount.Path.Samples[1].Time)

	runs := decode[[]string](t, get(t, srv.URL+"/runs"))
	assert.Contains(t, runs, res.RunID)

	keys := decode[[]string](t, get(t, srv.URL+"/runs/"+res.RunID))
	assert.Len(t, keys, 3)

	key := waypoint.StoreKey(res.Layers[0].ID, "origin") + waypoint.TransformSuffix
	resp = get(t, srv.URL+"/runs/"+res.RunID+"/paths/"+key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	path := decode[domain.Path](t, resp)
	assert.True(t, path.TransformAxis)

	resp = get(t, srv.URL+"/runs/"+res.RunID+"/paths/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, srv.URL+"/runs/"+res.RunID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp = get(t, srv.URL+"/runs/"+res.RunID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConvert_QueryOverrides(t *testing.T) {
	srv := newServer(t, false)

	q := url.Values{"frame_rate": {"12"}, "transform_params": {"amount"}}
	resp := post(t, srv.URL+"/convert?"+q.Encode(), scene)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[waypoint.Result](t, resp)

	assert.Equal(t, 12.0, res.FrameRate)
	amount, _ := res.Param(0, "amount")
	assert.NotNil(t, amount.TransformPath)
	origin, _ := res.Param(0, "origin")
	assert.Nil(t, origin.TransformPath)

	resp = post(t, srv.URL+"/convert?frame_rate=-1", scene)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConvert_NestedQueryOverrides(t *testing.T) {
	srv := newServer(t, false)

	resp := post(t, srv.URL+"/convert?units.scale=10", scene)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[waypoint.Result](t, resp)
	origin, ok := res.Param(0, "origin")
	require.True(t, ok)
	assert.Equal(t, []float64{10, -5}, origin.Path.Samples[0].Value)

	resp = post(t, srv.URL+"/convert?units.scael=10", scene)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Contains(t, body["error"], "scael")
}

func TestConvert_BadDocument(t *testing.T) {
	srv := newServer(t, false)

	resp := post(t, srv.URL+"/convert", `<layer/>`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Contains(t, body["error"], "canvas")

	resp = post(t, srv.URL+"/convert", "  ")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInspect(t *testing.T) {
	srv := newServer(t, false)

	resp := post(t, srv.URL+"/inspect", scene)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[waypoint.Result](t, resp)
	assert.Empty(t, res.RunID)
	assert.Zero(t, res.Paths())
}

func TestRuns_NoStore(t *testing.T) {
	srv := newServer(t, false)
	resp := get(t, srv.URL+"/runs")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestMetricsAndSpec(t *testing.T) {
	srv := newServer(t, false)
	post(t, srv.URL+"/convert", scene)

	resp := get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "waypoint_paths_generated_total")

	resp = get(t, srv.URL+"/openapi.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	spec := decode[map[string]any](t, resp)
	assert.Equal(t, "3.0.3", spec["openapi"])

	resp = get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoadSpec_Valid(t *testing.T) {
	spec, err := httpAdapter.LoadSpec()
	require.NoError(t, err)
	require.NoError(t, spec.Validate(context.Background()))
	assert.NotNil(t, spec.Paths.Find("/convert"))
}
