package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/bridge"
	"github.com/ssafuel/station-gateway/internal/config"
	"github.com/ssafuel/station-gateway/internal/handlers"
	"github.com/ssafuel/station-gateway/internal/repository"
	"github.com/ssafuel/station-gateway/internal/services"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/ssafuel/station-gateway/pkg/mqtt"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"github.com/ssafuel/station-gateway/pkg/prom"
	"github.com/ssafuel/station-gateway/pkg/redis"
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

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)

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

	redisAdap, err := redis.NewAdapter("default", config.Get().RedisKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
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

	transactionRepo := repository.NewTransactionRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	stationRepo := repository.NewStationRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	gate := access.NewGate(stationRepo, assignmentRepo, accountRepo)
	tokenResolver := access.NewTokenResolver(accountRepo, redisAdap, config.Get().AuthTokenTTL)

	// Broker connection for config pushes triggered by portal edits. The
	// client queues while offline, so a broker outage does not block the API.
	mqttClient, err := mqtt.NewClient(mqtt.Config{
		Broker:         config.Get().MqttBroker,
		ClientID:       config.Get().MqttClientID,
		Username:       config.Get().MqttUsername,
		Password:       config.Get().MqttPassword,
		CAFile:         config.Get().MqttCAFile,
		CertFile:       config.Get().MqttCertFile,
		KeyFile:        config.Get().MqttKeyFile,
		ConnectTimeout: config.Get().MqttConnectTimeout,
	})
	if err != nil {
		logger.Error("failed to create mqtt client", "error", err)
		return
	}
	if err := mqttClient.Connect(); err != nil {
		logger.Warn("broker not reachable yet, publishes will queue", "error", err)
	}
	configPublisher := bridge.NewPublisher(mqttClient, config.Get().MqttTopicNamespace)

	// services
	ingestService := services.NewIngestService(transactionRepo)
	flagService := services.NewFlagService(assignmentRepo)
	deviceService := services.NewDeviceService(deviceRepo, flagService, configPublisher)
	stationService := services.NewStationService(stationRepo, assignmentRepo, gate)
	assetService := services.NewAssetService(assetRepo)
	authService := services.NewAuthService(accountRepo, tokenResolver)
	healthService := services.NewHealthService(db)

	// v1 handlers
	auth := handlers.NewAuthenticator(tokenResolver)
	iotHandler := handlers.NewIoTHandler(ingestService, config.Get().IngestAPIKey)
	authHandler := handlers.NewAuthHandler(authService)
	stationHandler := handlers.NewStationHandler(stationService)
	deviceHandler := handlers.NewDeviceHandler(deviceService, gate)
	assetHandler := handlers.NewAssetHandler(assetService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, authHandler, auth)
	handlers.RegisterStationRoutes(g, stationHandler, auth)
	handlers.RegisterDeviceRoutes(g, deviceHandler, auth)
	handlers.RegisterAssetRoutes(g, assetHandler, auth)
	handlers.RegisterTransactionRoutes(g, iotHandler, auth)
	handlers.RegisterHealthRoutes(g, healthHandler)
	handlers.RegisterIngestRoutes(s.Router, iotHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
		mqttClient.Disconnect()
	}
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
