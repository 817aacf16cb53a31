package bridge

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/ssafuel/station-gateway/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records publishes for assertions.
type fakeConn struct {
	mu       sync.Mutex
	messages []fakeMessage
	err      error
}

type fakeMessage struct {
	topic   string
	qos     byte
	payload []byte
}

func (c *fakeConn) Publish(topic string, qos byte, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, fakeMessage{topic, qos, payload})
	return nil
}

func (c *fakeConn) last(t *testing.T) fakeMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.messages)
	return c.messages[len(c.messages)-1]
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func TestPublisher_InfoResponse(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "SSA")

	pub.PublishInfoResponse("BWSR123456", services.Resolution{StationID: "ST001", SubID: "BW01"})

	msg := conn.last(t)
	assert.Equal(t, "SSA/BWSR123456/INFORES", msg.topic)
	assert.Equal(t, byte(0), msg.qos)

	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.payload, &frame))
	assert.Equal(t, "ST001", frame["stationid"])
	assert.Equal(t, "BW01", frame["bowser"])
}

func TestPublisher_InfoResponseEmptyResolution(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "SSA")

	// Unresolved devices still get an answer, with empty fields.
	pub.PublishInfoResponse("UNKNOWN001", services.Resolution{})

	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal(conn.last(t).payload, &frame))
	assert.Equal(t, "", frame["stationid"])
	assert.Equal(t, "", frame["bowser"])
}

func TestPublisher_AssetResponse(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "SSA")

	pub.PublishAssetResponse("BWSR123456", services.AssetCheck{
		BarcodeNumber: "THEDHJLO0003972",
		ModelNumber:   "DHJLO",
		Valid:         100,
		Volume:        20,
	})

	msg := conn.last(t)
	assert.Equal(t, "SSA/BWSR123456/ASSET", msg.topic)

	var frame struct {
		DeviceID string `json:"devID"`
		Barrsp   struct {
			Barnum string  `json:"barnum"`
			Modnum string  `json:"modnum"`
			Valid  int     `json:"valid"`
			Volume float64 `json:"volume"`
		} `json:"barrsp"`
	}
	require.NoError(t, json.Unmarshal(msg.payload, &frame))
	assert.Equal(t, "BWSR123456", frame.DeviceID)
	assert.Equal(t, "THEDHJLO0003972", frame.Barrsp.Barnum)
	assert.Equal(t, "DHJLO", frame.Barrsp.Modnum)
	assert.Equal(t, 100, frame.Barrsp.Valid)
	assert.Equal(t, 20.0, frame.Barrsp.Volume)
}

func TestPublisher_ConfigFrame(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "SSA")

	pub.PublishConfig("TANK567890", 100, 99, "SUT")

	msg := conn.last(t)
	assert.Equal(t, "SSA/TANK567890/CONFIG", msg.topic)

	// The capitalized Admflg key is a firmware contract.
	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.payload, &frame))
	assert.Contains(t, frame, "Admflg")
	assert.Contains(t, frame, "usrflg")
	assert.Equal(t, float64(100), frame["Admflg"])
	assert.Equal(t, float64(99), frame["usrflg"])
	assert.Equal(t, "SUT", frame["devtyp"])
	assert.Equal(t, "TANK567890", frame["devID"])
}

func TestPublisher_TransactAck(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "SSA")

	pub.PublishTransactAck("STAN111111", 99)

	msg := conn.last(t)
	assert.Equal(t, "SSA/STAN111111/RESPONSE", msg.topic)

	var frame struct {
		DeviceID string `json:"devID"`
		Trnrsp   struct {
			Status int `json:"status"`
		} `json:"trnrsp"`
	}
	require.NoError(t, json.Unmarshal(msg.payload, &frame))
	assert.Equal(t, "STAN111111", frame.DeviceID)
	assert.Equal(t, 99, frame.Trnrsp.Status)
}

func TestPublisher_EmptyDeviceIDSkipped(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "SSA")

	pub.PublishTransactAck("", 100)
	assert.Zero(t, conn.count())
}

func TestPublisher_PublishErrorIsSwallowed(t *testing.T) {
	conn := &fakeConn{err: errors.New("broker gone")}
	pub := NewPublisher(conn, "SSA")

	// Must not panic or surface the error; retry belongs to the device.
	pub.PublishConfig("BWSR123456", 100, 100, "BU")
	assert.Zero(t, conn.count())
}
