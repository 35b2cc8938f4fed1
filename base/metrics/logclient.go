package metrics

import (
	"github.com/x-xyz/market/base/log"
)

// LogClient writes every metric as a debug log line.
type LogClient struct{}

func emit(kind, name string, value interface{}, tags []string) error {
	log.Log().WithFields(log.Fields{"metric": kind, "key": name, "val": value, "tags": tags}).Debug("metric")
	return nil
}

func (lc *LogClient) Gauge(name string, value float64, tags []string, rate float64) error {
	return emit("gauge", name, value, tags)
}

func (lc *LogClient) Count(name string, value int64, tags []string, rate float64) error {
	return emit("count", name, value, tags)
}

func (lc *LogClient) Histogram(name string, value float64, tags []string, rate float64) error {
	return emit("histogram", name, value, tags)
}

func (lc *LogClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	return emit("time_ms", name, value, tags)
}
