package prom

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	SystemBridge = "bridge"
	SystemIngest = "ingest"
)

const (
	MetricMessagesReceived  = "messages_received_total"
	MetricMessagesPublished = "messages_published_total"
	MetricRelayFailures     = "relay_failures_total"
	MetricRelayDuration     = "relay_duration_seconds"
	MetricTransactions      = "transactions_total"
)

var createLock = &sync.Mutex{}
var namespace = "none"
var defaultLabels prometheus.Labels
var enabled = false

var counterVecs = make(map[string]*prometheus.CounterVec)
var histogramVecs = make(map[string]*prometheus.HistogramVec)

func Create(host, env, nameSpace string) error {
	defaultLabels = prometheus.Labels{"env": env, "instance": host}
	namespace = nameSpace
	enabled = true

	var err error
	hasError := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	hasError(createCounterVec(SystemBridge, MetricMessagesReceived, []string{"topic"}))
	hasError(createCounterVec(SystemBridge, MetricMessagesPublished, []string{"suffix"}))
	hasError(createCounterVec(SystemBridge, MetricRelayFailures, []string{"reason"}))
	hasError(createHistogramVec(SystemBridge, MetricRelayDuration, []string{"result"}))
	hasError(createCounterVec(SystemIngest, MetricTransactions, []string{"type", "result"}))

	return err
}

func ListenAndServe(addr string, url string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Router.GET(url, hh)
	logger.Info("[metrics-server] listening...", "url", url)
	if err := s.ListenAndServe(addr); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}

func IncCounter(subsystem, name string, labelValues ...string) {
	if !enabled {
		return
	}
	if c, ok := counterVecs[subsystem+name]; ok {
		c.WithLabelValues(labelValues...).Inc()
	}
}

func ObserveHistogram(subsystem, name string, value float64, labelValues ...string) {
	if !enabled {
		return
	}
	if h, ok := histogramVecs[subsystem+name]; ok {
		h.WithLabelValues(labelValues...).Observe(value)
	}
}

func createCounterVec(subsystem, name string, labels []string) error {
	createLock.Lock()
	defer createLock.Unlock()
	counterVecs[subsystem+name] = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	}, labels)
	return prometheus.Register(counterVecs[subsystem+name])
}

func createHistogramVec(subsystem, name string, labels []string) error {
	createLock.Lock()
	defer createLock.Unlock()
	histogramVecs[subsystem+name] = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	}, labels)
	return prometheus.Register(histogramVecs[subsystem+name])
}
