package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestEvaluationsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := NewEvaluations(reg)

	e.Observe(OutcomePassed, 120*time.Millisecond)
	e.Observe(OutcomePassed, 80*time.Millisecond)
	e.Observe(OutcomeTimeout, 10*time.Second)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, want := range []string{"pygym_evaluations_total", "pygym_evaluation_duration_seconds"} {
		if !found[want] {
			t.Errorf("expected metric family %q, got %v", want, found)
		}
	}
}

func TestNilEvaluationsIsNoop(t *testing.T) {
	var e *Evaluations
	// Must not panic.
	e.Observe(OutcomeFailed, time.Second)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := NewEvaluations(reg)
	e.Observe(OutcomeFailed, 50*time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 64*1024)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])

	if !strings.Contains(body, "pygym_evaluations_total") {
		t.Errorf("metrics body missing evaluations counter:\n%s", body)
	}
}
