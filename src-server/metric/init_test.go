package metric

import (
	"testing"
	"time"

	"cogbot/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func registered(t *testing.T, name string) bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return true
		}
	}
	return false
}

func TestGaugeStopsOnImmediateShutdown(t *testing.T) {
	const name = "cogbot_test_latency_microsec"
	as := utils.NewLocalAppState(&utils.Config{})
	interval := time.Hour

	latencyGauge(as, name, "test gauge", make(chan float64), &interval)
	if !registered(t, name) {
		t.Fatal("gauge should be registered")
	}
	// shutdown before the collector goroutine had a chance to run
	as.GracefulShutdown()

	deadline := time.Now().Add(2 * time.Second)
	for registered(t, name) {
		if time.Now().After(deadline) {
			t.Fatal("collector did not stop on shutdown")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLatencyGaugeReportsLastValue(t *testing.T) {
	const name = "cogbot_test_send_microsec"
	as := utils.NewLocalAppState(&utils.Config{})
	t.Cleanup(as.GracefulShutdown)
	interval := time.Hour
	ch := make(chan float64)

	latencyGauge(as, name, "test gauge", ch, &interval)
	ch <- 42

	deadline := time.Now().Add(2 * time.Second)
	for {
		families, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			t.Fatal(err)
		}
		for _, f := range families {
			if f.GetName() == name && f.GetMetric()[0].GetGauge().GetValue() == 42 {
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("gauge never reported the sent latency")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
