package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ssafuel/station-gateway/pkg/mqtt"
)

// devicesim impersonates field dispensers for gateway testing. It publishes
// the same frames real firmware sends and records whatever the gateway
// answers on the device channels, driven over a small HTTP control API.

// SimDevice is one impersonated dispenser.
type SimDevice struct {
	DeviceID string `json:"dev_id"`
	Kind     string `json:"kind"` // bowser, stan or tank
	SubID    string `json:"sub_id"`
}

type TransactRequest struct {
	TransactionID string   `json:"trnsid"`
	Volume        *float64 `json:"trnvol"`
	Amount        *float64 `json:"trnamt"`
	Barcode       string   `json:"barnum"`
}

type AssetScanRequest struct {
	Barcode string `json:"barnum" binding:"required"`
}

// Simulator keeps registered devices and their received downlink frames.
type Simulator struct {
	mu        sync.Mutex
	devices   map[string]*SimDevice
	inbox     map[string][]json.RawMessage
	conn      *mqtt.Client
	namespace string
	rng       *rand.Rand
}

func NewSimulator(conn *mqtt.Client, namespace string) *Simulator {
	return &Simulator{
		devices:   make(map[string]*SimDevice),
		inbox:     make(map[string][]json.RawMessage),
		conn:      conn,
		namespace: namespace,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Register adds a device and subscribes to its downlink channels so the
// inbox captures every gateway answer.
func (s *Simulator) Register(d *SimDevice) error {
	s.mu.Lock()
	s.devices[d.DeviceID] = d
	s.mu.Unlock()

	for _, suffix := range []string{"RESPONSE", "CONFIG", "ASSET", "INFORES"} {
		topic := s.namespace + "/" + d.DeviceID + "/" + suffix
		err := s.conn.Subscribe(topic, 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
			s.record(d.DeviceID, msg.Payload())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) record(deviceID string, payload []byte) {
	body := make([]byte, len(payload))
	copy(body, payload)

	s.mu.Lock()
	s.inbox[deviceID] = append(s.inbox[deviceID], body)
	s.mu.Unlock()

	log.Info().Str("dev_id", deviceID).RawJSON("frame", body).Msg("downlink received")
}

func (s *Simulator) Device(deviceID string) (*SimDevice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[deviceID]
	return d, ok
}

func (s *Simulator) Inbox(deviceID string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]json.RawMessage(nil), s.inbox[deviceID]...)
}

// Transact publishes one transaction frame shaped like real firmware output.
func (s *Simulator) Transact(d *SimDevice, req TransactRequest, topic string) (map[string]any, error) {
	trnsid := req.TransactionID
	if trnsid == "" {
		trnsid = "SIM-" + uuid.NewString()[:8]
	}

	volume := 10 + s.rng.Float64()*40
	if req.Volume != nil {
		volume = *req.Volume
	}
	amount := volume * 275.5
	if req.Amount != nil {
		amount = *req.Amount
	}

	now := time.Now()
	event := map[string]any{
		"trnsid": trnsid,
		"trnvol": round2(volume),
		"trnamt": round2(amount),
		"pmpsts": "idle",
	}
	if req.Barcode != "" {
		event["barnum"] = req.Barcode
	}

	switch d.Kind {
	case "bowser":
		event["bwsrid"] = d.SubID
		event["pumpid"] = "P" + strconv.Itoa(1+s.rng.Intn(4))
	case "stan":
		event["stanid"] = d.SubID
		event["pmpid"] = "P" + strconv.Itoa(1+s.rng.Intn(4))
	case "tank":
		event["tankid"] = d.SubID
	}

	frame := map[string]any{
		"devID":  d.DeviceID,
		"todate": now.Format("2006-01-02"),
		"totime": now.Format("15:04:05"),
		"tmprtr": round2(20 + s.rng.Float64()*15),
		"hmidty": round2(30 + s.rng.Float64()*40),
		d.Kind:   event,
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		return nil, err
	}
	return frame, s.conn.Publish(topic, 1, payload)
}

func (s *Simulator) PublishJSON(topic string, frame map[string]any) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return s.conn.Publish(topic, 1, payload)
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}

type Handler struct {
	sim           *Simulator
	transactTopic string
	assetReqTopic string
	infoReqTopic  string
}

func (h *Handler) RegisterDevice(c *gin.Context) {
	var d SimDevice
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if d.DeviceID == "" || d.Kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dev_id and kind are required"})
		return
	}
	if d.Kind != "bowser" && d.Kind != "stan" && d.Kind != "tank" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be bowser, stan or tank"})
		return
	}
	if d.SubID == "" {
		d.SubID = "S01"
	}

	if err := h.sim.Register(&d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Info().Str("dev_id", d.DeviceID).Str("kind", d.Kind).Msg("device registered")
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) Transact(c *gin.Context) {
	d, ok := h.sim.Device(c.Param("dev_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device"})
		return
	}

	var req TransactRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	}

	frame, err := h.sim.Transact(d, req, h.transactTopic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, frame)
}

func (h *Handler) AssetScan(c *gin.Context) {
	d, ok := h.sim.Device(c.Param("dev_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device"})
		return
	}

	var req AssetScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	frame := map[string]any{"devID": d.DeviceID, "barnum": req.Barcode}
	if err := h.sim.PublishJSON(h.assetReqTopic, frame); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, frame)
}

func (h *Handler) InfoRequest(c *gin.Context) {
	d, ok := h.sim.Device(c.Param("dev_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device"})
		return
	}

	frame := map[string]any{"devID": d.DeviceID}
	if err := h.sim.PublishJSON(h.infoReqTopic, frame); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, frame)
}

func (h *Handler) Inbox(c *gin.Context) {
	deviceID := c.Param("dev_id")
	if _, ok := h.sim.Device(deviceID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dev_id": deviceID, "frames": h.sim.Inbox(deviceID)})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"connected": h.sim.conn.IsConnected(),
		"timestamp": time.Now(),
	})
}

func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/devices", handler.RegisterDevice)
		v1.POST("/devices/:dev_id/transact", handler.Transact)
		v1.POST("/devices/:dev_id/asset-scan", handler.AssetScan)
		v1.POST("/devices/:dev_id/info", handler.InfoRequest)
		v1.GET("/devices/:dev_id/inbox", handler.Inbox)
	}

	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8081")
	broker := getEnv("MQTT_BROKER", "tcp://127.0.0.1:1883")
	namespace := getEnv("MQTT_TOPIC_NAMESPACE", "SSA")
	transactTopic := getEnv("MQTT_TRANSACT_TOPIC", "SSA/DISPENSER/TRANSACT")
	assetReqTopic := getEnv("MQTT_ASSET_REQ_TOPIC", "SSA/REQUEST/ASSET")
	infoReqTopic := getEnv("MQTT_INFO_REQ_TOPIC", "SSA/DEVICEINFO/INFOREQ")

	conn, err := mqtt.NewClient(mqtt.Config{
		Broker:   broker,
		ClientID: "devicesim-" + uuid.NewString()[:8],
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mqtt client")
	}
	if err := conn.Connect(); err != nil {
		log.Fatal().Err(err).Str("broker", broker).Msg("failed to connect to broker")
	}

	sim := NewSimulator(conn, namespace)
	handler := &Handler{
		sim:           sim,
		transactTopic: transactTopic,
		assetReqTopic: assetReqTopic,
		infoReqTopic:  infoReqTopic,
	}

	router := SetupRouter(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	go func() {
		log.Info().Str("port", port).Str("broker", broker).Msg("device simulator listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	conn.Disconnect()
	if err := srv.Close(); err != nil {
		log.Error().Err(err).Msg("server close failed")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
