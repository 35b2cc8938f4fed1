/*Package metrics records market metrics through datadog-go.

Naming convention:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/market/base/env"
)

// TagValueNA is used for tags whose values are not available.
const TagValueNA = "n/a"

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

type Option func(*opt)

type opt struct {
	withPodName bool
	sampleRate  float64
}

// WithoutPodName drops the pod tag, which otherwise produces one custom metric per pod.
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// WithSampleRate sets the rate in (0, 1] at which bumps reach the agent.
func WithSampleRate(rate float64) Option {
	return func(o *opt) {
		if rate > 0 && rate <= 1 {
			o.sampleRate = rate
		}
	}
}

// New creates a metric client whose keys are prefixed with pkgName.
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
		sampleRate:  1,
	}
	for _, option := range options {
		option(&o)
	}

	// "host:" removes the host tag the agent adds by default.
	ddTags := []string{
		"host:",
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	if o.withPodName {
		ddTags = append(ddTags, "pod:"+env.PodName())
	}

	return &Metrics{
		pkgName:    pkgName,
		sampleRate: o.sampleRate,
		datadog:    DDMetrics{ddTags: ddTags},
	}
}

type Metrics struct {
	pkgName    string
	sampleRate float64
	datadog    DDMetrics
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + `.` + key
}

// recoverBump turns a panicking bump, usually an odd tag list, into a counter.
func (mt *Metrics) recoverBump(typ, key string, tags []string) {
	if err := recover(); err != nil {
		mt.datadog.BumpSum(typ+".panic", 1, 1, "tag", mt.key(key)+"#"+strings.Join(tags, "#"))
	}
}

func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverBump("bumpavg", key, tags)
	mt.datadog.BumpAvg(mt.key(key), val, mt.sampleRate, tags...)
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump("bumpsum", key, tags)
	mt.datadog.BumpSum(mt.key(key), val, mt.sampleRate, tags...)
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump("bumphistogram", key, tags)
	mt.datadog.BumpHistogram(mt.key(key), val, mt.sampleRate, tags...)
}

// BumpTime starts a timer. Record a function duration with
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) (e Ender) {
	e = fakeEnd{}
	defer mt.recoverBump("bumptime", key, tags)
	return mt.datadog.BumpTime(mt.key(key), mt.sampleRate, tags...)
}

type fakeEnd struct{}

func (fakeEnd) End() {}

type timeTracker struct {
	start      time.Time
	key        string
	tags       []string
	sampleRate float64
}

func (dt *timeTracker) End() {
	d := time.Since(dt.start)
	msec := float64(d/time.Millisecond) + float64(d%time.Millisecond)*1e-6
	if err := client().TimeInMilliseconds(dt.key, msec, dt.tags, dt.sampleRate); err != nil {
		logBumpErr("BumpTime", dt.key, msec, err)
	}
}
