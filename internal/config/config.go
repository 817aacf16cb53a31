package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/ssafuel/station-gateway/pkg/logger"
)

var config *Config

// Config holds every env-driven setting of the gateway. Only this struct
// should be used to read configuration; no direct os.Getenv calls outside
// this package.
type Config struct {
	AppEnv  string `env:"APP_ENV" default:"dev"`
	AppName string `env:"APP_NAME" default:"station_gateway"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR" default:":8000"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr      string `env:"REDIS_ADDR"`
	RedisUsername  string `env:"REDIS_USER"`
	RedisPassword  string `env:"REDIS_PASS"`
	RedisDatabase  int    `env:"REDIS_DATABASE"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" default:"ssa"`

	// MQTT broker connection for the bridge and the device simulator.
	MqttBroker         string        `env:"MQTT_BROKER" default:"tcp://127.0.0.1:1883"`
	MqttClientID       string        `env:"MQTT_CLIENT_ID"`
	MqttUsername       string        `env:"MQTT_USERNAME"`
	MqttPassword       string        `env:"MQTT_PASSWORD"`
	MqttCAFile         string        `env:"MQTT_CA_FILE"`
	MqttCertFile       string        `env:"MQTT_CERT_FILE"`
	MqttKeyFile        string        `env:"MQTT_KEY_FILE"`
	MqttConnectTimeout time.Duration `env:"MQTT_CONNECT_TIMEOUT" default:"10s"`

	// Topic namespace. Device-scoped topics are {namespace}/{devID}/{suffix}.
	MqttTopicNamespace string `env:"MQTT_TOPIC_NAMESPACE" default:"SSA"`
	MqttTransactTopic  string `env:"MQTT_TRANSACT_TOPIC" default:"SSA/DISPENSER/TRANSACT"`
	MqttAssetReqTopic  string `env:"MQTT_ASSET_REQ_TOPIC" default:"SSA/REQUEST/ASSET"`
	MqttInfoReqTopic   string `env:"MQTT_INFO_REQ_TOPIC" default:"SSA/DEVICEINFO/INFOREQ"`

	// HTTP relay from the bridge to the ingestion endpoint.
	IngestURL     string        `env:"INGEST_URL" default:"http://127.0.0.1:8000/iot/update/"`
	IngestAPIKey  string        `env:"INGEST_API_KEY"`
	IngestTimeout time.Duration `env:"INGEST_TIMEOUT" default:"5s"`

	BridgeWorkers     int    `env:"BRIDGE_WORKERS" default:"100"`
	BridgeQueueDepth  int    `env:"BRIDGE_QUEUE_DEPTH" default:"10000"`
	MetricsListenAddr string `env:"METRICS_LISTEN_ADDR" default:":9100"`

	PromNamespace string `env:"PROM_NAMESPACE" default:"station_gateway"`

	AuthTokenTTL time.Duration `env:"AUTH_TOKEN_TTL" default:"24h"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return errors.New("failed to map env variables to Configuration object error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
