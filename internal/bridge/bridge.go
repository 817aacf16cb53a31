package bridge

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/ssafuel/station-gateway/internal/services"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/ssafuel/station-gateway/pkg/mqtt"
	"github.com/ssafuel/station-gateway/pkg/prom"
	"github.com/ssafuel/station-gateway/pkg/worker"
)

const handlerTimeout = 30 * time.Second

// Config carries the broker topics and pool sizing for one bridge.
type Config struct {
	TransactTopic string
	AssetReqTopic string
	InfoReqTopic  string

	Workers    int
	QueueDepth int
}

// Bridge owns the broker subscription side of the gateway. Inbound frames
// are dispatched onto a worker pool; a malformed or failing frame is logged
// and dropped so one bad message never takes the subscription down.
type Bridge struct {
	cfg       Config
	conn      *mqtt.Client
	resolver  *services.ResolverService
	assets    *services.AssetService
	relay     *Relay
	publisher *Publisher
	workers   *worker.Manager

	startOnce sync.Once
	stopOnce  sync.Once
	stopping  chan struct{}
	done      chan struct{}
}

func New(cfg Config, conn *mqtt.Client, resolver *services.ResolverService, assets *services.AssetService, relay *Relay, publisher *Publisher) *Bridge {
	return &Bridge{
		cfg:       cfg,
		conn:      conn,
		resolver:  resolver,
		assets:    assets,
		relay:     relay,
		publisher: publisher,
		workers:   worker.NewManager(cfg.QueueDepth, cfg.Workers),
		stopping:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

type job struct {
	topic   string
	handler func()
}

// Start connects to the broker and begins consuming. It returns after the
// connection attempt resolves; the worker pool runs until Stop.
func (b *Bridge) Start() error {
	var err error
	b.startOnce.Do(func() {
		b.workers.SetWorker(b.runJob)
		go func() {
			b.workers.Start()
			close(b.done)
		}()
		err = b.conn.Connect()
	})
	return err
}

// Subscriptions are (re)established on every connect through the client's
// OnConnect hook, wired in cmd. Exposed so the hook can reach it.
func (b *Bridge) Subscribe(c *mqtt.Client) {
	subscribe := func(topic string, handler func(payload []byte)) {
		err := c.Subscribe(topic, 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
			prom.IncCounter(prom.SystemBridge, prom.MetricMessagesReceived, topic)
			b.dispatch(topic, msg.Payload(), handler)
		})
		if err != nil {
			logger.Error("bridge subscribe failed", "topic", topic, "error", err)
		}
	}

	subscribe(b.cfg.TransactTopic, b.handleTransact)
	subscribe(b.cfg.AssetReqTopic, b.handleAssetRequest)
	subscribe(b.cfg.InfoReqTopic, b.handleInfoRequest)
}

// Stop closes the broker connection first so no new frames arrive, then
// drains the in-flight handlers. A late delivery racing the shutdown is
// dropped rather than queued, so no paho routine can block on a pool that
// has no workers left.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopping)
		b.conn.Disconnect()
		b.workers.Exit()
		<-b.done
	})
}

// dispatch hands the frame to the pool. The payload is copied because paho
// may reuse the buffer backing msg.Payload after the callback returns.
func (b *Bridge) dispatch(topic string, payload []byte, handler func(payload []byte)) {
	body := make([]byte, len(payload))
	copy(body, payload)

	accepted := b.workers.EnqueueUntil(b.stopping, job{
		topic:   topic,
		handler: func() { handler(body) },
	})
	if !accepted {
		logger.Warn("bridge stopping, frame dropped", "topic", topic)
	}
}

func (b *Bridge) runJob(_ int, raw interface{}) {
	j, ok := raw.(job)
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("bridge handler panicked", "topic", j.topic, "panic", r)
		}
	}()

	j.handler()
}

// transactHead is the minimal view of a transaction frame the bridge needs;
// the full payload is relayed verbatim to the ingest API.
type transactHead struct {
	DeviceID string `json:"devID"`
}

func (b *Bridge) handleTransact(payload []byte) {
	var head transactHead
	if err := json.Unmarshal(payload, &head); err != nil {
		logger.Warn("transact frame is not valid json, dropped", "error", err)
		return
	}
	if head.DeviceID == "" {
		logger.Warn("transact frame missing devID, dropped")
		return
	}

	status := b.relay.Send(payload)
	b.publisher.PublishTransactAck(head.DeviceID, status)
}

type assetRequest struct {
	DeviceID string `json:"devID"`
	Barreq   struct {
		BarcodeNumber string `json:"barnum"`
		AssetNumber   string `json:"astnum"`
	} `json:"barreq"`
}

func (b *Bridge) handleAssetRequest(payload []byte) {
	var req assetRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		logger.Warn("asset request is not valid json, dropped", "error", err)
		return
	}

	barnum := req.Barreq.BarcodeNumber
	if barnum == "" {
		barnum = req.Barreq.AssetNumber
	}
	if barnum == "" {
		logger.Warn("asset request without barcode, dropped", "dev_id", req.DeviceID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	check, err := b.assets.Check(ctx, barnum)
	if err != nil {
		logger.Error("asset check failed", "dev_id", req.DeviceID, "error", err)
		// The invalid default still goes out so the device is answered.
	}
	b.publisher.PublishAssetResponse(req.DeviceID, check)
}

type infoRequest struct {
	DeviceID string `json:"devID"`
}

func (b *Bridge) handleInfoRequest(payload []byte) {
	var req infoRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		logger.Warn("info request is not valid json, dropped", "error", err)
		return
	}
	if req.DeviceID == "" {
		logger.Warn("info request missing devID, dropped")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	res, err := b.resolver.Resolve(ctx, req.DeviceID)
	if err != nil {
		logger.Error("device resolution failed", "dev_id", req.DeviceID, "error", err)
		// Fall through with empty fields, the device still gets an answer.
	}
	b.publisher.PublishInfoResponse(req.DeviceID, res)
}
