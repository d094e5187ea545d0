// Package mqtt serves forecast requests over an MQTT broker in serve mode.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coremetrics "github.com/gridwatt/demandcast/core/metrics"
	"github.com/gridwatt/demandcast/core/model"
	"github.com/gridwatt/demandcast/core/predictor"
	"github.com/gridwatt/demandcast/infra/logger"
	"github.com/gridwatt/demandcast/internal/eventbus"
)

// Config defines the connection parameters for the MQTT responder.
type Config struct {
	Enabled       bool   `json:"enabled"`
	Broker        string `json:"broker"`
	ClientID      string `json:"client_id"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	RequestTopic  string `json:"request_topic"`
	ResponseTopic string `json:"response_topic"`
	QoS           byte   `json:"qos"`
	UseTLS        bool   `json:"use_tls"`
	ClientCert    string `json:"client_cert"`
	ClientKey     string `json:"client_key"`
	CABundle      string `json:"ca_bundle"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "demandcast"
	}
	if c.RequestTopic == "" {
		c.RequestTopic = "demandcast/forecast/request"
	}
	if c.ResponseTopic == "" {
		c.ResponseTopic = "demandcast/forecast/response"
	}
}

// Validate checks mandatory fields when the responder is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	return nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// request is the wire form of a forecast request on the bus. The optional
// request_id is echoed back in the response.
type request struct {
	RequestID string `json:"request_id,omitempty"`
	model.PredictionRequest
}

type response struct {
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error,omitempty"`
	*model.PredictionResult
}

// Responder subscribes to the request topic and publishes one response per
// request.
type Responder struct {
	cli    pahoClient
	engine *predictor.Engine
	bus    *eventbus.Bus[coremetrics.PredictionEvent]
	log    logger.Logger
	cfg    Config
}

// NewResponder connects to the broker and subscribes to the request topic.
func NewResponder(cfg Config, engine *predictor.Engine, bus *eventbus.Bus[coremetrics.PredictionEvent], log logger.Logger) (*Responder, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	r := &Responder{engine: engine, bus: bus, log: log, cfg: cfg}

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected, subscribing to %s", cfg.RequestTopic)
		if token := c.Subscribe(cfg.RequestTopic, cfg.QoS, r.onRequest); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	r.cli = cli
	return r, nil
}

func (r *Responder) onRequest(_ paho.Client, msg paho.Message) {
	var req request
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		r.log.Errorf("failed to decode request: %v", err)
		r.reply(response{Error: "invalid request payload"})
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	start := time.Now()
	res, err := r.engine.Predict(req.PredictionRequest)
	ev := coremetrics.PredictionEvent{
		RequestID: req.RequestID,
		Region:    req.Region,
		ModelType: req.ModelType,
		Duration:  time.Since(start),
		Time:      start,
	}
	if err != nil {
		ev.Err = err.Error()
		r.publish(ev)
		r.reply(response{RequestID: req.RequestID, Error: err.Error()})
		return
	}
	ev.PredictedUsage = res.PredictedUsage
	ev.ModelLoaded = res.ModelLoaded
	r.publish(ev)
	r.reply(response{RequestID: req.RequestID, PredictionResult: res})
}

func (r *Responder) reply(resp response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		r.log.Errorf("failed to encode response: %v", err)
		return
	}
	if token := r.cli.Publish(r.cfg.ResponseTopic, r.cfg.QoS, false, payload); token.Wait() && token.Error() != nil {
		r.log.Errorf("publish error: %v", token.Error())
	}
}

func (r *Responder) publish(ev coremetrics.PredictionEvent) {
	if r.bus != nil {
		r.bus.Publish(ev)
	}
}

// Disconnect gracefully closes the MQTT connection.
func (r *Responder) Disconnect() {
	if r.cli != nil && r.cli.IsConnected() {
		r.cli.Disconnect(250)
	}
}
