package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ssafuel/station-gateway/internal/bridge"
	"github.com/ssafuel/station-gateway/internal/config"
	"github.com/ssafuel/station-gateway/internal/repository"
	"github.com/ssafuel/station-gateway/internal/services"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/ssafuel/station-gateway/pkg/mqtt"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"github.com/ssafuel/station-gateway/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	if err := prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}
	go prom.ListenAndServe(config.Get().MetricsListenAddr, "/metrics")

	deviceRepo := repository.NewDeviceRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	resolverService := services.NewResolverService(deviceRepo)
	assetService := services.NewAssetService(assetRepo)

	relay := bridge.NewRelay(config.Get().IngestURL, config.Get().IngestAPIKey, config.Get().IngestTimeout)

	var b *bridge.Bridge
	mqttClient, err := mqtt.NewClient(mqtt.Config{
		Broker:         config.Get().MqttBroker,
		ClientID:       config.Get().MqttClientID,
		Username:       config.Get().MqttUsername,
		Password:       config.Get().MqttPassword,
		CAFile:         config.Get().MqttCAFile,
		CertFile:       config.Get().MqttCertFile,
		KeyFile:        config.Get().MqttKeyFile,
		ConnectTimeout: config.Get().MqttConnectTimeout,

		// Subscriptions are re-established on every reconnect.
		OnConnect: func(c *mqtt.Client) {
			b.Subscribe(c)
		},
	})
	if err != nil {
		logger.Error("failed to create mqtt client", "error", err)
		return
	}

	publisher := bridge.NewPublisher(mqttClient, config.Get().MqttTopicNamespace)

	b = bridge.New(
		bridge.Config{
			TransactTopic: config.Get().MqttTransactTopic,
			AssetReqTopic: config.Get().MqttAssetReqTopic,
			InfoReqTopic:  config.Get().MqttInfoReqTopic,
			Workers:       config.Get().BridgeWorkers,
			QueueDepth:    config.Get().BridgeQueueDepth,
		},
		mqttClient,
		resolverService,
		assetService,
		relay,
		publisher,
	)

	if err := b.Start(); err != nil {
		logger.Error("failed to start bridge", "error", err)
		return
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	b.Stop()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
