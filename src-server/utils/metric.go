package utils

import "time"

type Metric struct {
	DatabaseRead       chan float64
	DatabaseWrite      chan float64
	DiscordSendMessage chan float64
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:       make(chan float64, 1),
		DatabaseWrite:      make(chan float64, 1),
		DiscordSendMessage: make(chan float64, 1),
	}
}

// Observe sends the latency since start in microseconds to ch. The value is
// dropped when nobody is collecting, a handler never blocks on metrics.
func Observe(ch chan float64, start time.Time) {
	if ch == nil {
		return
	}
	select {
	case ch <- float64(time.Since(start).Microseconds()):
	default:
	}
}
