package logging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var logMessages = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ssm_log_messages_total",
		Help: "Total number of log lines logged by level",
	},
	[]string{"level"})

func init() {
	prometheus.MustRegister(logMessages)
}

// PrometheusHook is a logrus.Hook counting log lines per level.
type PrometheusHook struct {
	counters map[logrus.Level]prometheus.Counter
}

func NewPrometheusHook() *PrometheusHook {
	counters := make(map[logrus.Level]prometheus.Counter)
	for _, level := range []logrus.Level{
		logrus.DebugLevel,
		logrus.InfoLevel,
		logrus.WarnLevel,
		logrus.ErrorLevel,
	} {
		counters[level] = logMessages.WithLabelValues(level.String())
	}
	return &PrometheusHook{counters: counters}
}

func (h *PrometheusHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *PrometheusHook) Fire(entry *logrus.Entry) error {
	if counter, ok := h.counters[entry.Level]; ok {
		counter.Inc()
	}
	return nil
}
