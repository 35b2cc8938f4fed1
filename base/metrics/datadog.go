package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/market/base/log"
)

const (
	ddClientsSize    = 16 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1

	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}

	DdPort = 8125

	// ddClientsIdx picks ddClients round robin
	ddClientsIdx = int32(0)
	ddClients    []statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// initDDClient connects to the agent at datadog_host. Without a host every client is a
// LogClient, which is what tests and local runs get.
func initDDClient() {
	host := viper.GetString("datadog_host")
	ddClients = make([]statsCli, ddClientsSize)
	if host == "" {
		for i := range ddClients {
			ddClients[i] = &LogClient{}
		}
		return
	}

	addr := fmt.Sprintf("%s:%d", host, DdPort)
	log.Log().WithFields(log.Fields{"addr": addr, "clients": ddClientsSize}).Info("connecting to datadog agent")
	for i := 0; i < ddClientsSize; i++ {
		cli, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
		}
		ddClients[i] = cli
	}
}

func client() statsCli {
	initOnce.Do(initDDClient)
	i := atomic.AddInt32(&ddClientsIdx, 1) & ddClientsIdxMask
	return ddClients[i]
}

func logBumpErr(fn, key string, val interface{}, err error) {
	log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
}

// DDMetrics sends bumps to the datadog agent with a fixed set of tags.
type DDMetrics struct {
	ddTags []string
}

func (dm *DDMetrics) tags(tags []string) []string {
	res := make([]string, 0, len(dm.ddTags)+len(tags)/2)
	res = append(res, dm.ddTags...)
	return append(res, parseTag(tags)...)
}

// BumpAvg is a gauge; datadog has no plain average.
func (dm *DDMetrics) BumpAvg(key string, val, sampleRate float64, tags ...string) {
	if err := client().Gauge(key, val, dm.tags(tags), sampleRate); err != nil {
		logBumpErr("BumpAvg", key, val, err)
	}
}

func (dm *DDMetrics) BumpSum(key string, val, sampleRate float64, tags ...string) {
	if err := client().Count(key, int64(val), dm.tags(tags), sampleRate); err != nil {
		logBumpErr("BumpSum", key, val, err)
	}
}

func (dm *DDMetrics) BumpHistogram(key string, val, sampleRate float64, tags ...string) {
	if err := client().Histogram(key, val, dm.tags(tags), sampleRate); err != nil {
		logBumpErr("BumpHistogram", key, val, err)
	}
}

func (dm *DDMetrics) BumpTime(key string, sampleRate float64, tags ...string) Ender {
	return &timeTracker{
		start:      time.Now(),
		key:        key,
		tags:       dm.tags(tags),
		sampleRate: sampleRate,
	}
}

// parseTag turns ("market", "official") pairs into "market:official".
func parseTag(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
