/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"syscall"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/hyperledger/fabric-bnc/core/operations/fakes"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/hyperledger/fabric-lib-go/common/metrics/prometheus"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/tedsuo/ifrit"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingChecker struct{ err error }

func (f failingChecker) HealthCheck(context.Context) error   { return f.err }
func (f failingChecker) ReadinessCheck(context.Context) error { return f.err }

var _ = Describe("System", func() {
	var (
		fakeLogger *fakes.Logger
		options    SystemOptions
		system     *System
	)

	BeforeEach(func() {
		fakeLogger = &fakes.Logger{}
		options = SystemOptions{
			Options: Options{
				Logger:        fakeLogger,
				ListenAddress: "127.0.0.1:0",
			},
			Metrics: MetricsOptions{Provider: "disabled"},
			Version: "test",
		}
	})

	JustBeforeEach(func() {
		system = NewSystem(options)
	})

	AfterEach(func() {
		if system != nil {
			system.Stop()
		}
	})

	get := func(path string) (int, string) {
		resp, err := http.Get(fmt.Sprintf("http://%s%s", system.Addr(), path))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		return resp.StatusCode, string(body)
	}

	It("serves liveness", func() {
		Expect(system.Start()).To(Succeed())

		code, body := get("/healthz")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring(`"status":"OK"`))

		Expect(system.RegisterChecker("store", failingChecker{err: errors.New("closed")})).To(Succeed())
		code, body = get("/healthz")
		Expect(code).To(Equal(http.StatusServiceUnavailable))
		Expect(body).To(ContainSubstring("closed"))
	})

	It("serves readiness", func() {
		Expect(system.Start()).To(Succeed())

		code, _ := get("/readyz")
		Expect(code).To(Equal(http.StatusOK))

		Expect(system.RegisterReadinessChecker("networks", failingChecker{err: errors.New("no registry")})).To(Succeed())
		code, body := get("/readyz")
		Expect(code).To(Equal(http.StatusServiceUnavailable))
		Expect(body).To(ContainSubstring("no registry"))
	})

	It("serves the version and log spec", func() {
		Expect(system.Start()).To(Succeed())

		code, body := get("/version")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring(`"Name":"bnpeer"`))

		code, body = get("/logspec")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring("spec"))
	})

	It("tags responses with a request id", func() {
		Expect(system.Start()).To(Succeed())

		resp, err := http.Get(fmt.Sprintf("http://%s/healthz", system.Addr()))
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.Header.Get("X-Request-Id")).NotTo(BeEmpty())
	})

	It("recovers from panicking handlers", func() {
		system.RegisterHandler("/panic", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}), false)
		Expect(system.Start()).To(Succeed())

		code, _ := get("/panic")
		Expect(code).To(Equal(http.StatusInternalServerError))
		Expect(fakeLogger.WarnCallCount()).To(Equal(1))
		Expect(fmt.Sprint(fakeLogger.WarnArgsForCall(0)...)).To(ContainSubstring("boom"))

		code, _ = get("/healthz")
		Expect(code).To(Equal(http.StatusOK))
	})

	Context("when metrics are disabled", func() {
		It("does not serve /metrics", func() {
			Expect(system.Provider).To(Equal(&disabled.Provider{}))
			Expect(system.Start()).To(Succeed())

			code, _ := get("/metrics")
			Expect(code).To(Equal(http.StatusNotFound))
		})
	})

	Context("when the provider is unknown", func() {
		BeforeEach(func() {
			options.Metrics.Provider = "graphite"
		})

		It("warns and disables metrics", func() {
			Expect(system.Provider).To(Equal(&disabled.Provider{}))
			Expect(fakeLogger.WarnfCallCount()).To(Equal(1))
			msg, args := fakeLogger.WarnfArgsForCall(0)
			Expect(fmt.Sprintf(msg, args...)).To(Equal("Unknown provider type: graphite; metrics disabled"))
		})
	})

	Context("when metrics are exported to prometheus", func() {
		BeforeEach(func() {
			options.Metrics.Provider = "prometheus"
		})

		It("serves /metrics", func() {
			Expect(system.Provider).To(BeAssignableToTypeOf(&prometheus.Provider{}))
			Expect(system.Start()).To(Succeed())

			code, body := get("/metrics")
			Expect(code).To(Equal(http.StatusOK))
			Expect(body).To(ContainSubstring(`bnpeer_version{version="test"} 1`))
		})
	})

	Context("when metrics are sent to statsd", func() {
		var (
			fakeClock *fakeclock.FakeClock
			conn      net.PacketConn
		)

		BeforeEach(func() {
			var err error
			conn, err = net.ListenPacket("udp", "127.0.0.1:0")
			Expect(err).NotTo(HaveOccurred())

			fakeClock = fakeclock.NewFakeClock(time.Now())
			options.Clock = fakeClock
			options.Metrics = MetricsOptions{
				Provider: "statsd",
				Statsd: &Statsd{
					Network:       "udp",
					Address:       conn.LocalAddr().String(),
					WriteInterval: time.Second,
					Prefix:        "bnpeer",
				},
			}
		})

		AfterEach(func() {
			conn.Close()
		})

		It("publishes on every write interval", func() {
			Expect(system.Start()).To(Succeed())
			fakeClock.WaitForNWatchersAndIncrement(time.Second, 2)

			buf := make([]byte, 64*1024)
			Expect(conn.SetReadDeadline(time.Now().Add(10 * time.Second))).To(Succeed())
			n, _, err := conn.ReadFrom(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(buf[:n])).To(ContainSubstring("bnpeer.bnpeer_version.test:1"))
		})
	})

	Context("when statsd is unreachable", func() {
		BeforeEach(func() {
			options.Metrics = MetricsOptions{
				Provider: "statsd",
				Statsd:   &Statsd{Network: "bob", Address: "127.0.0.1:0", Prefix: "bnpeer"},
			}
		})

		It("fails to start", func() {
			Expect(system.Start()).To(MatchError(ContainSubstring("unknown network bob")))
			system = nil
		})
	})

	It("runs as an ifrit process", func() {
		process := ifrit.Invoke(system)
		Eventually(process.Ready()).Should(BeClosed())

		code, _ := get("/healthz")
		Expect(code).To(Equal(http.StatusOK))

		process.Signal(syscall.SIGTERM)
		Eventually(process.Wait()).Should(Receive(BeNil()))
		system = nil
	})
})

var _ = Describe("Server", func() {
	It("requires a verified client certificate for secure handlers", func() {
		handler := requireCert(&fakes.Handler{Code: http.StatusOK, Text: "secure"})

		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/logspec", nil))
		Expect(resp.Code).To(Equal(http.StatusUnauthorized))

		req := httptest.NewRequest(http.MethodGet, "/logspec", nil)
		req.TLS = &tls.ConnectionState{}
		resp = httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		Expect(resp.Code).To(Equal(http.StatusUnauthorized))
	})

	It("keeps caller request ids", func() {
		handler := withRequestID(&fakes.Handler{Code: http.StatusOK, Text: "ok"})

		req := httptest.NewRequest(http.MethodGet, "/version", nil)
		req.Header.Set("X-Request-Id", "req-1")
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		Expect(resp.Header().Get("X-Request-Id")).To(Equal("req-1"))
		Expect(resp.Body.String()).To(Equal("ok"))
	})

	It("logs served requests", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		server := NewServer(Options{ListenAddress: "127.0.0.1:0"})
		server.requestLogger = flogging.NewFabricLogger(zap.New(core))
		handler := withRequestID(server.withRequestLogging(&fakes.Handler{Code: http.StatusTeapot, Text: "tea"}))

		req := httptest.NewRequest(http.MethodGet, "/version", nil)
		req.Header.Set("X-Request-Id", "req-2")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.FilterMessage("served operations request").All()
		Expect(entries).To(HaveLen(1))
		fields := entries[0].ContextMap()
		Expect(fields).To(HaveKeyWithValue("path", "/version"))
		Expect(fields).To(HaveKeyWithValue("request_id", "req-2"))
		Expect(fields).To(HaveKeyWithValue("status", int64(http.StatusTeapot)))
	})

	It("fails to listen with a bad key pair", func() {
		server := NewServer(Options{
			ListenAddress: "127.0.0.1:0",
			TLS:           TLS{Enabled: true, CertFile: "missing-cert.pem", KeyFile: "missing-key.pem"},
		})
		Expect(server.Start()).To(MatchError(ContainSubstring("failed to load operations key pair")))
	})
})
