package bridge

import (
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/ssafuel/station-gateway/pkg/prom"
	"github.com/valyala/fasthttp"
)

const relayAuthHeader = "TZ-KEY"

// Relay posts raw transaction payloads to the ingest API over HTTP. The
// bridge never writes transactions to the database directly; persistence
// stays behind the API so validation lives in one place.
//
// There is no retry here. The outcome maps to a sentinel flag the device
// receives in its ack, and the device re-sends on 99.
type Relay struct {
	client  *fasthttp.Client
	url     string
	apiKey  string
	timeout time.Duration
}

func NewRelay(url, apiKey string, timeout time.Duration) *Relay {
	return &Relay{
		client: &fasthttp.Client{
			MaxIdleConnDuration: 60 * time.Second,
		},
		url:     url,
		apiKey:  apiKey,
		timeout: timeout,
	}
}

// Send posts the payload and maps the response to a sentinel status:
// 200/201 read as 100, everything else (including transport failure) as 99.
func (r *Relay) Send(payload []byte) int {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(relayAuthHeader, r.apiKey)
	req.SetBody(payload)

	start := time.Now()
	err := r.client.DoTimeout(req, resp, r.timeout)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		prom.IncCounter(prom.SystemBridge, prom.MetricRelayFailures, "transport")
		prom.ObserveHistogram(prom.SystemBridge, prom.MetricRelayDuration, elapsed, "error")
		logger.Error("ingest relay failed", "url", r.url, "error", err)
		return model.FlagInactive
	}

	status := resp.StatusCode()
	if status == fasthttp.StatusOK || status == fasthttp.StatusCreated {
		prom.ObserveHistogram(prom.SystemBridge, prom.MetricRelayDuration, elapsed, "ok")
		return model.FlagActive
	}

	prom.IncCounter(prom.SystemBridge, prom.MetricRelayFailures, "status")
	prom.ObserveHistogram(prom.SystemBridge, prom.MetricRelayDuration, elapsed, "rejected")
	logger.Warn("ingest relay rejected", "status", status, "body", string(resp.Body()))
	return model.FlagInactive
}
