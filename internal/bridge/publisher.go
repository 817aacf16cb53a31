// Package bridge connects the broker side of the gateway: it subscribes to
// the device topics, dispatches inbound frames to handlers on a worker pool,
// relays transactions to the ingest API, and answers devices on their own
// channels.
package bridge

import (
	"encoding/json"

	"github.com/ssafuel/station-gateway/internal/services"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/ssafuel/station-gateway/pkg/prom"
)

// Topic suffixes answered on the device's own channel,
// {namespace}/{deviceId}/{suffix}. Fixed firmware contract.
const (
	suffixInfoResponse  = "INFORES"
	suffixAssetResponse = "ASSET"
	suffixConfig        = "CONFIG"
	suffixTransactAck   = "RESPONSE"
)

// Conn is the broker operation set the publisher needs.
type Conn interface {
	Publish(topic string, qos byte, payload []byte) error
}

// Publisher emits the four outbound command frames. Every publish is QoS 0
// fire-and-forget: a failure is logged and dropped, and the device re-asks
// on its own timeout.
type Publisher struct {
	conn      Conn
	namespace string
}

func NewPublisher(conn Conn, namespace string) *Publisher {
	return &Publisher{
		conn:      conn,
		namespace: namespace,
	}
}

// infoResponse answers a discovery request. The bowser field carries
// whichever category's sub-id resolved; the name is historical.
type infoResponse struct {
	StationID string `json:"stationid"`
	Bowser    string `json:"bowser"`
}

type assetResponse struct {
	DeviceID string        `json:"devID"`
	Barrsp   barcodeResult `json:"barrsp"`
}

type barcodeResult struct {
	BarcodeNumber string  `json:"barnum"`
	ModelNumber   string  `json:"modnum"`
	Valid         int     `json:"valid"`
	Volume        float64 `json:"volume"`
}

type configFrame struct {
	DeviceID string `json:"devID"`
	Admflg   int    `json:"Admflg"`
	Usrflg   int    `json:"usrflg"`
	Devtyp   string `json:"devtyp"`
}

type transactAck struct {
	DeviceID string    `json:"devID"`
	Trnrsp   ackStatus `json:"trnrsp"`
}

type ackStatus struct {
	Status int `json:"status"`
}

// PublishInfoResponse answers a discovery request. Empty fields are sent
// as-is when nothing resolved so the device is not left waiting.
func (p *Publisher) PublishInfoResponse(deviceID string, res services.Resolution) {
	p.publish(deviceID, suffixInfoResponse, infoResponse{
		StationID: res.StationID,
		Bowser:    res.SubID,
	})
}

// PublishAssetResponse answers a barcode validation request.
func (p *Publisher) PublishAssetResponse(deviceID string, check services.AssetCheck) {
	p.publish(deviceID, suffixAssetResponse, assetResponse{
		DeviceID: deviceID,
		Barrsp: barcodeResult{
			BarcodeNumber: check.BarcodeNumber,
			ModelNumber:   check.ModelNumber,
			Valid:         check.Valid,
			Volume:        check.Volume,
		},
	})
}

// PublishConfig pushes fresh authorization flags to a device. Satisfies
// services.ConfigPublisher.
func (p *Publisher) PublishConfig(deviceMqttID string, admFlg, usrFlg int, devtyp string) {
	p.publish(deviceMqttID, suffixConfig, configFrame{
		DeviceID: deviceMqttID,
		Admflg:   admFlg,
		Usrflg:   usrFlg,
		Devtyp:   devtyp,
	})
}

// PublishTransactAck reports the ingest outcome back to the device.
func (p *Publisher) PublishTransactAck(deviceID string, status int) {
	p.publish(deviceID, suffixTransactAck, transactAck{
		DeviceID: deviceID,
		Trnrsp:   ackStatus{Status: status},
	})
}

func (p *Publisher) publish(deviceID, suffix string, frame interface{}) {
	if deviceID == "" {
		logger.Warn("publish skipped, empty device id", "suffix", suffix)
		return
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		logger.Error("publish frame marshal failed", "suffix", suffix, "error", err)
		return
	}

	topic := p.namespace + "/" + deviceID + "/" + suffix
	if err := p.conn.Publish(topic, 0, payload); err != nil {
		logger.Error("publish failed", "topic", topic, "error", err)
		return
	}
	prom.IncCounter(prom.SystemBridge, prom.MetricMessagesPublished, suffix)
}
