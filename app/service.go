// Package app wires the configuration into a long-lived forecast service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gridwatt/demandcast/api/forecast"
	"github.com/gridwatt/demandcast/config"
	"github.com/gridwatt/demandcast/core/artifact"
	coremetrics "github.com/gridwatt/demandcast/core/metrics"
	"github.com/gridwatt/demandcast/core/predictor"
	"github.com/gridwatt/demandcast/core/synth"
	"github.com/gridwatt/demandcast/infra/logger"
	"github.com/gridwatt/demandcast/infra/metrics"
	"github.com/gridwatt/demandcast/infra/mqtt"
	"github.com/gridwatt/demandcast/infra/store"
	"github.com/gridwatt/demandcast/internal/eventbus"
)

// Service runs the forecast engine behind HTTP and optional MQTT transports,
// fanning prediction events out to the configured metrics sinks.
type Service struct {
	Engine *predictor.Engine

	cfg       *config.Config
	bus       *eventbus.Bus[coremetrics.PredictionEvent]
	sink      coremetrics.Sink
	handler   *forecast.Handler
	responder *mqtt.Responder
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	cache := artifact.NewCache(cfg.ModelsDir, store.NewFS())
	engine := predictor.New(cache, synth.New(nil, nil), logger.New("predictor"), nil)

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New[coremetrics.PredictionEvent]()
	svc := &Service{
		Engine:  engine,
		cfg:     cfg,
		bus:     bus,
		sink:    sink,
		handler: forecast.NewHandler(engine, bus, logger.New("api")),
		log:     logg,
	}

	if cfg.MQTT.Enabled {
		responder, err := mqtt.NewResponder(cfg.MQTT, engine, bus, logger.New("mqtt"))
		if err != nil {
			return nil, fmt.Errorf("mqtt responder: %w", err)
		}
		svc.responder = responder
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	events := s.bus.Subscribe()
	go func() {
		for ev := range events {
			if err := s.sink.RecordPrediction(ev); err != nil {
				s.log.Errorf("record prediction: %v", err)
			}
		}
	}()

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: s.handler.Mux()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()

	s.log.Infof("serving forecasts on %s (models: %s)", s.cfg.HTTP.Addr, s.cfg.ModelsDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.responder != nil {
		s.responder.Disconnect()
	}
	s.bus.Close()
	return nil
}
