package metric

import (
	"errors"
	"log/slog"
	"time"

	"cogbot/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

// registerGauge registers a gauge, reusing the already registered one when
// Init runs twice in the same process.
func registerGauge(name, help string) (prometheus.Gauge, bool) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	if err := prometheus.Register(gauge); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			slog.Error("can't register "+name+" metric", "error", err)
			return gauge, false
		}
		if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
			gauge = existing
		}
	}
	slog.Debug(name + " metric registered")
	gauge.Set(0)
	return gauge, true
}

func unregisterGauge(name string, gauge prometheus.Gauge) {
	switch prometheus.Unregister(gauge) {
	case true:
		slog.Debug(name + " metric unregistered")
	case false:
		slog.Warn(name + " metric not registered")
	}
}

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	const name = "cogbot_database_empty_read_microsec"
	gauge, ok := registerGauge(name, "The latency of an empty database read in microseconds")
	if !ok {
		return
	}
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregisterGauge(name, gauge)
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				gauge.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

// latencyGauge exposes the last value sent on ch, reset to 0 when nothing
// arrives for clearTickerInterval.
func latencyGauge(as *utils.AppState, name, help string, ch chan float64, clearTickerInterval *time.Duration) {
	gauge, ok := registerGauge(name, help)
	if !ok {
		return
	}
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregisterGauge(name, gauge)
				return
			case latency := <-ch:
				gauge.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

func discordHeartbeatLatency(as *utils.AppState, tickerInterval *time.Duration) {
	const name = "cogbot_discord_heartbeat_latency_microsec"
	gauge, ok := registerGauge(name, "The latency of a discord heartbeat in microseconds")
	if !ok {
		return
	}
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregisterGauge(name, gauge)
				return
			case <-ticker.C:
				latency := as.DgSession.HeartbeatLatency().Microseconds()
				gauge.Set(float64(latency))
			}
		}
	}()
}

// Init starts the collectors that need the database and the Discord
// session. The dispatch, reload and sync collectors in core.go are always
// registered.
func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, &tickerInterval)
	latencyGauge(as,
		"cogbot_database_read_microsec",
		"The latency of a database read in microseconds",
		as.MetricChans.DatabaseRead, &clearTickerInterval)
	latencyGauge(as,
		"cogbot_database_write_microsec",
		"The latency of a database write in microseconds",
		as.MetricChans.DatabaseWrite, &clearTickerInterval)
	latencyGauge(as,
		"cogbot_discord_send_message_microsec",
		"The latency of a discord message send in microseconds",
		as.MetricChans.DiscordSendMessage, &clearTickerInterval)
	discordHeartbeatLatency(as, &tickerInterval)
}
