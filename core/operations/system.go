/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"context"
	"net"
	"os"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	kitstatsd "github.com/go-kit/kit/metrics/statsd"
	"github.com/hyperledger/fabric-bnc/common/metadata"
	"github.com/hyperledger/fabric-bnc/core/operations/healthz"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/flogging/httpadmin"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/hyperledger/fabric-lib-go/common/metrics/prometheus"
	"github.com/hyperledger/fabric-lib-go/common/metrics/statsd"
	"github.com/hyperledger/fabric-lib-go/common/metrics/statsd/goruntime"
	libhealthz "github.com/hyperledger/fabric-lib-go/healthz"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Statsd struct {
	Network       string
	Address       string
	WriteInterval time.Duration
	Prefix        string
}

type MetricsOptions struct {
	Provider string
	Statsd   *Statsd
}

type SystemOptions struct {
	Options
	Metrics MetricsOptions
	Version string
	// Clock drives the statsd tickers; nil uses the wall clock.
	Clock clock.Clock
}

// System serves the operations endpoints of a bnpeer: liveness, readiness,
// log levels, metrics and version.
type System struct {
	*Server
	metrics.Provider

	logger           Logger
	healthHandler    *libhealthz.HealthHandler
	readinessHandler *healthz.ReadinessHandler
	options          SystemOptions
	statsd           *kitstatsd.Statsd
	clock            clock.Clock
	collectorTicker  clock.Ticker
	sendTicker       clock.Ticker
	versionGauge     metrics.Gauge
}

func NewSystem(o SystemOptions) *System {
	logger := o.Logger
	if logger == nil {
		logger = flogging.MustGetLogger("operations.runner")
	}

	c := o.Clock
	if c == nil {
		c = clock.NewClock()
	}

	system := &System{
		Server:  NewServer(o.Options),
		logger:  logger,
		options: o,
		clock:   c,
	}

	system.initializeHealthCheckHandler()
	system.initializeReadinessHandler()
	system.initializeLoggingHandler()
	system.initializeMetricsProvider()
	system.initializeVersionInfoHandler()

	return system
}

func (s *System) Start() error {
	if err := s.startMetricsTickers(); err != nil {
		return err
	}

	s.versionGauge.With("version", s.options.Version).Set(1)

	return s.Server.Start()
}

// Run implements ifrit.Runner.
func (s *System) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	if err := s.Start(); err != nil {
		return err
	}

	close(ready)

	<-signals
	return s.Stop()
}

func (s *System) Stop() error {
	if s.collectorTicker != nil {
		s.collectorTicker.Stop()
		s.collectorTicker = nil
	}
	if s.sendTicker != nil {
		s.sendTicker.Stop()
		s.sendTicker = nil
	}
	return s.Server.Stop()
}

// RegisterChecker adds a liveness checker served on /healthz.
func (s *System) RegisterChecker(component string, checker libhealthz.HealthChecker) error {
	return s.healthHandler.RegisterChecker(component, checker)
}

// RegisterReadinessChecker adds a readiness checker served on /readyz.
func (s *System) RegisterReadinessChecker(component string, checker healthz.ReadinessChecker) error {
	return s.readinessHandler.RegisterChecker(component, checker)
}

func (s *System) initializeMetricsProvider() {
	m := s.options.Metrics
	switch m.Provider {
	case "statsd":
		prefix := m.Statsd.Prefix
		if prefix != "" && !strings.HasSuffix(prefix, ".") {
			prefix = prefix + "."
		}

		ks := kitstatsd.New(prefix, s)
		s.Provider = &statsd.Provider{Statsd: ks}
		s.statsd = ks

	case "prometheus":
		s.Provider = &prometheus.Provider{}
		s.RegisterHandler("/metrics", promhttp.Handler(), s.options.TLS.Enabled)

	default:
		if m.Provider != "disabled" && m.Provider != "" {
			s.logger.Warnf("Unknown provider type: %s; metrics disabled", m.Provider)
		}
		s.Provider = &disabled.Provider{}
	}
	s.versionGauge = versionGauge(s.Provider)
}

func (s *System) initializeLoggingHandler() {
	s.RegisterHandler("/logspec", httpadmin.NewSpecHandler(), s.options.TLS.Enabled)
}

func (s *System) initializeHealthCheckHandler() {
	s.healthHandler = libhealthz.NewHealthHandler()
	s.RegisterHandler("/healthz", s.healthHandler, false)
}

func (s *System) initializeReadinessHandler() {
	s.readinessHandler = healthz.NewReadinessHandler()
	s.RegisterHandler("/readyz", s.readinessHandler, false)
}

func (s *System) initializeVersionInfoHandler() {
	versionInfo := &VersionInfoHandler{
		Logger:    s.logger,
		Name:      metadata.ProgramName,
		CommitSHA: metadata.CommitSHA,
		Version:   metadata.Version,
	}
	s.RegisterHandler("/version", versionInfo, false)
}

func (s *System) startMetricsTickers() error {
	if s.statsd == nil {
		return nil
	}

	opts := s.options.Metrics.Statsd
	c, err := net.Dial(opts.Network, opts.Address)
	if err != nil {
		return err
	}
	c.Close()

	s.collectorTicker = s.clock.NewTicker(opts.WriteInterval / 2)
	goCollector := goruntime.NewCollector(s.Provider)
	go goCollector.CollectAndPublish(s.collectorTicker.C())

	s.sendTicker = s.clock.NewTicker(opts.WriteInterval)
	go s.statsd.SendLoop(context.TODO(), s.sendTicker.C(), opts.Network, opts.Address)

	return nil
}
