/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/hashicorp/go-uuid"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate counterfeiter -o fakes/logger.go -fake-name Logger . Logger

type Logger interface {
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
}

// TLS configures the operations listener.
type TLS struct {
	Enabled            bool
	CertFile           string
	KeyFile            string
	ClientCertRequired bool
	ClientCACertFiles  []string
}

// Config returns the server side TLS configuration or nil when TLS is
// disabled.
func (t TLS) Config() (*tls.Config, error) {
	if !t.Enabled {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load operations key pair")
	}
	caCertPool := x509.NewCertPool()
	for _, caPath := range t.ClientCACertFiles {
		caPem, err := os.ReadFile(caPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read client CA %s", caPath)
		}
		caCertPool.AppendCertsFromPEM(caPem)
	}

	clientAuth := tls.VerifyClientCertIfGiven
	if t.ClientCertRequired {
		clientAuth = tls.RequireAndVerifyClientCert
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		ClientCAs:    caCertPool,
		ClientAuth:   clientAuth,
	}, nil
}

type Options struct {
	Logger        Logger
	ListenAddress string
	TLS           TLS
}

// Server is the HTTP server behind the operations endpoints.
type Server struct {
	logger     Logger
	options    Options
	httpServer *http.Server
	mux        *http.ServeMux
	addr       string

	requestLogger *flogging.FabricLogger
}

func NewServer(o Options) *Server {
	logger := o.Logger
	if logger == nil {
		logger = flogging.MustGetLogger("operations.server")
	}

	mux := http.NewServeMux()
	return &Server{
		logger:        logger,
		options:       o,
		mux:           mux,
		requestLogger: flogging.MustGetLogger("operations.request"),
		httpServer: &http.Server{
			Addr:         o.ListenAddress,
			Handler:      handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{logger}))(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Minute,
		},
	}
}

// Run implements ifrit.Runner.
func (s *Server) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	if err := s.Start(); err != nil {
		return err
	}

	close(ready)

	<-signals
	return s.Stop()
}

func (s *Server) Start() error {
	listener, err := s.Listen()
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()

	go s.httpServer.Serve(listener)

	return nil
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Listen() (net.Listener, error) {
	listener, err := net.Listen("tcp", s.options.ListenAddress)
	if err != nil {
		return nil, err
	}
	tlsConfig, err := s.options.TLS.Config()
	if err != nil {
		listener.Close()
		return nil, err
	}
	if tlsConfig != nil {
		listener = tls.NewListener(listener, tlsConfig)
	}
	return listener, nil
}

// Addr returns the bound address once the server has started.
func (s *Server) Addr() string {
	return s.addr
}

// RegisterHandler registers handler at pattern. Secure handlers reject
// requests without a verified client certificate when TLS is enabled.
func (s *Server) RegisterHandler(pattern string, handler http.Handler, secure bool) {
	if secure && s.options.TLS.Enabled {
		handler = requireCert(handler)
	}
	s.mux.Handle(pattern, withRequestID(s.withRequestLogging(handler)))
}

// Log adapts the server logger for go-kit consumers.
func (s *Server) Log(keyvals ...interface{}) error {
	s.logger.Warn(keyvals...)
	return nil
}

func requireCert(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.TLS == nil:
			fallthrough
		case len(r.TLS.VerifiedChains) == 0:
			fallthrough
		case len(r.TLS.VerifiedChains[0]) == 0:
			w.WriteHeader(http.StatusUnauthorized)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			if id, err := uuid.GenerateUUID(); err == nil {
				reqID = id
			}
			r.Header.Set("X-Request-Id", reqID)
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r)
	})
}

// recoveryLogger reports handler panics through the server logger.
type recoveryLogger struct {
	logger Logger
}

func (r recoveryLogger) Println(args ...interface{}) {
	r.logger.Warn(args...)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.requestLogger.Zap().Debug("served operations request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-Id")),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
