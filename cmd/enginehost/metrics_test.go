package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gogpu/enginehost"
	"github.com/gogpu/enginehost/engine"
)

func TestMetricsHandlerExportsGateCounters(t *testing.T) {
	reg := newRegistry()
	h := enginehost.New(engine.Static(engine.Exports{}), enginehost.WithRegisterer(reg))
	h.ToggleWireframe()

	srv := httptest.NewServer(metricsHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	out := string(body)
	for _, want := range []string{
		`enginehost_capability_calls_total{capability="toggle_wireframe",outcome="not_ready"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}
