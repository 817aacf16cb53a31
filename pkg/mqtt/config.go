package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

type Config struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	CAFile         string
	CertFile       string
	KeyFile        string
	ConnectTimeout time.Duration

	// OnConnect runs on every (re)connect, before the offline queue drains.
	// The bridge uses it to (re)establish its subscriptions.
	OnConnect func(c *Client)
}

func (cfg Config) pahoOptions() (*mqtt.ClientOptions, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "station-gateway-" + uuid.NewString()[:8]
	}
	opts.SetClientID(clientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	if cfg.CAFile != "" || cfg.CertFile != "" {
		tlsCfg, err := cfg.tlsConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	return opts, nil
}

func (cfg Config) tlsConfig() (*tls.Config, error) {
	out := &tls.Config{}

	if cfg.CAFile != "" {
		caCert, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		out.RootCAs = pool
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		out.Certificates = []tls.Certificate{cert}
	}

	return out, nil
}
