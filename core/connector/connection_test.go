/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector_test

import (
	"strings"
	"sync"

	"github.com/hyperledger/fabric-bnc/common/leveldbhelper"
	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/chaincode/inprocengine"
	"github.com/hyperledger/fabric-bnc/core/chaincode/mock"
	"github.com/hyperledger/fabric-bnc/core/connector"
	cmock "github.com/hyperledger/fabric-bnc/core/connector/mock"
	"github.com/hyperledger/fabric-bnc/core/container/inproccontroller"
	"github.com/hyperledger/fabric-bnc/core/identity"
	"github.com/hyperledger/fabric-bnc/core/scc/bnscc"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/hyperledger/fabric-lib-go/common/metrics/metricsfakes"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var _ = Describe("Connection", func() {
	var (
		dbProvider *leveldbhelper.Provider
		registry   *chaincode.Registry
		manager    *connector.Manager
		conn       *connector.Connection
		admin      *connector.SecurityContext
	)

	BeforeEach(func() {
		var err error
		dbProvider, err = leveldbhelper.NewProvider(&leveldbhelper.Conf{})
		Expect(err).NotTo(HaveOccurred())

		containers := inproccontroller.NewRegistry()
		Expect(containers.Register(bnscc.ChaincodeName, bnscc.New())).To(Succeed())
		registry = chaincode.NewRegistry(&inprocengine.Launcher{Containers: containers, ChaincodeName: bnscc.ChaincodeName}, nil)

		manager = connector.NewManager(
			[]connector.Profile{{Name: "defaultProfile", MSPID: "Org1MSP"}, {Name: "otherProfile", MSPID: "Org2MSP"}},
			registry,
			&identity.LevelDBCollections{Provider: dbProvider},
			nil,
			nil,
		)

		conn, err = manager.Connect("defaultProfile", "")
		Expect(err).NotTo(HaveOccurred())
		admin, err = conn.Login("admin", "adminpw")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		dbProvider.Close()
	})

	Describe("Login", func() {
		It("returns an unbound context when no network is targeted", func() {
			Expect(admin.Identity().Name).To(Equal("admin"))
			Expect(admin.ChaincodeID()).To(BeEmpty())
		})

		It("authenticates issued identities", func() {
			im, err := manager.IdentityManager("defaultProfile")
			Expect(err).NotTo(HaveOccurred())
			creds, err := im.CreateIdentity(admin.Identity(), "bob1", nil)
			Expect(err).NotTo(HaveOccurred())

			sc, err := conn.Login("bob1", creds.UserSecret)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Identity().Name).To(Equal("bob1"))

			_, err = conn.Login("bob1", "blahblah")
			Expect(err).To(Equal(identity.AuthenticationFailedError{Name: "bob1"}))
		})

		It("fails for unknown identities", func() {
			_, err := conn.Login("nobody", "secret")
			Expect(err).To(Equal(identity.IdentityNotFoundError{Name: "nobody"}))
		})

		It("fails for networks that have not been started", func() {
			netConn, err := manager.Connect("defaultProfile", "net1")
			Expect(err).NotTo(HaveOccurred())

			_, err = netConn.Login("admin", "adminpw")
			Expect(err).To(Equal(connector.NetworkNotFoundError{Network: "net1", Profile: "defaultProfile"}))
			Expect(err).To(MatchError(ContainSubstring("net1")))
		})

		It("binds to started networks", func() {
			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())

			netConn, err := manager.Connect("defaultProfile", "net1")
			Expect(err).NotTo(HaveOccurred())
			Expect(netConn.NetworkID()).To(Equal("net1"))
			Expect(netConn.Profile().MSPID).To(Equal("Org1MSP"))

			sc, err := netConn.Login("admin", "anything")
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.ChaincodeID()).To(Equal(admin.ChaincodeID()))
			Expect(sc.Network()).To(Equal("net1"))
		})
	})

	Describe("Start", func() {
		It("binds the security context to the new chaincode", func() {
			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())

			id, ok := registry.GetBusinessNetwork("net1", "defaultProfile")
			Expect(ok).To(BeTrue())
			Expect(admin.ChaincodeID()).To(Equal(id))
			Expect(admin.Network()).To(Equal("net1"))
		})

		It("reports networks that already exist without a second instance", func() {
			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
			first := admin.ChaincodeID()

			other, err := conn.Login("admin", "adminpw")
			Expect(err).NotTo(HaveOccurred())
			err = conn.Start(other, "net1", startTransaction("net1"), connector.StartOptions{})
			Expect(err).To(Equal(connector.NetworkAlreadyExistsError{Network: "net1"}))
			Expect(err).To(MatchError("business network [net1] already exists"))
			Expect(other.ChaincodeID()).To(BeEmpty())

			Expect(registry.BusinessNetworks()).To(HaveLen(1))
			id, _ := registry.GetBusinessNetwork("net1", "defaultProfile")
			Expect(id).To(Equal(first))
			_, err = registry.GetChaincode(first)
			Expect(err).NotTo(HaveOccurred())
		})

		It("starts the same network independently per profile", func() {
			otherConn, err := manager.Connect("otherProfile", "")
			Expect(err).NotTo(HaveOccurred())
			otherAdmin, err := otherConn.Login("admin", "adminpw")
			Expect(err).NotTo(HaveOccurred())

			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
			Expect(otherConn.Start(otherAdmin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
			Expect(admin.ChaincodeID()).NotTo(Equal(otherAdmin.ChaincodeID()))
		})

		It("propagates other engine failures and removes the new instance", func() {
			err := conn.Start(admin, "net1", "{not json", connector.StartOptions{})
			Expect(err).To(HaveOccurred())
			engineErr, ok := errors.Cause(err).(*chaincode.EngineError)
			Expect(ok).To(BeTrue())
			Expect(engineErr.Status).To(Equal(int32(bnscc.StatusBadRequest)))

			_, ok = registry.GetBusinessNetwork("net1", "defaultProfile")
			Expect(ok).To(BeFalse())
			Expect(admin.ChaincodeID()).To(BeEmpty())

			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
		})

		It("reports existing networks before validating the start transaction", func() {
			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
			first := admin.ChaincodeID()

			other, err := conn.Login("admin", "adminpw")
			Expect(err).NotTo(HaveOccurred())
			err = conn.Start(other, "net1", "{bad", connector.StartOptions{})
			Expect(err).To(Equal(connector.NetworkAlreadyExistsError{Network: "net1"}))

			id, ok := registry.GetBusinessNetwork("net1", "defaultProfile")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(first))
			_, err = conn.Ping(admin)
			Expect(err).NotTo(HaveOccurred())
		})

		Context("with a chaincode log level", func() {
			BeforeEach(func() {
				spec := flogging.Global.Spec()
				DeferCleanup(func() { flogging.Global.ActivateSpec(spec) })
				Expect(flogging.Global.ActivateSpec("info")).To(Succeed())
			})

			It("sets the level once started", func() {
				Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{LogLevel: "debug"})).To(Succeed())
				Expect(conn.Start(admin, "net2", startTransaction("net2"), connector.StartOptions{LogLevel: "warn"})).To(Succeed())

				spec := flogging.Global.Spec()
				Expect(strings.Count(spec, bnscc.ChaincodeName+"=")).To(Equal(1))
				Expect(spec).To(ContainSubstring(bnscc.ChaincodeName + "=warn"))
				Expect(flogging.Global.Level(bnscc.ChaincodeName)).To(Equal(zapcore.WarnLevel))
			})

			It("leaves logging alone when the start fails", func() {
				err := conn.Start(admin, "net1", "{bad", connector.StartOptions{LogLevel: "debug"})
				Expect(err).To(HaveOccurred())
				Expect(flogging.Global.Spec()).NotTo(ContainSubstring(bnscc.ChaincodeName))

				err = conn.Start(admin, "net2", startTransaction("net2"), connector.StartOptions{LogLevel: "loud"})
				Expect(err).To(MatchError("invalid log level [loud]"))
				Expect(flogging.Global.Spec()).NotTo(ContainSubstring(bnscc.ChaincodeName))
				_, ok := registry.GetBusinessNetwork("net2", "defaultProfile")
				Expect(ok).To(BeFalse())
			})
		})

		It("requires a security context", func() {
			err := conn.Start(nil, "net1", startTransaction("net1"), connector.StartOptions{})
			Expect(err).To(HaveOccurred())
		})

		It("lets exactly one concurrent start win", func() {
			var wg sync.WaitGroup
			errs := make([]error, 10)
			for i := range errs {
				sc, err := conn.Login("admin", "adminpw")
				Expect(err).NotTo(HaveOccurred())
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs[i] = conn.Start(sc, "net1", startTransaction("net1"), connector.StartOptions{})
				}(i)
			}
			wg.Wait()

			succeeded := 0
			for _, err := range errs {
				if err == nil {
					succeeded++
					continue
				}
				Expect(err).To(Equal(connector.NetworkAlreadyExistsError{Network: "net1"}))
			}
			Expect(succeeded).To(Equal(1))
			Expect(registry.BusinessNetworks()).To(HaveLen(1))
		})
	})

	Describe("Dispatch", func() {
		BeforeEach(func() {
			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
		})

		It("pings the bound network", func() {
			result, err := conn.Ping(admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveKeyWithValue("network", "net1"))
			Expect(result).To(HaveKeyWithValue("identity", admin.Identity().Identifier))
		})

		It("queries and invokes the started instance", func() {
			Expect(conn.InvokeChainCode(admin, bnscc.AddResource, []string{"org.acme.Car", "car1", `{"make":"volvo"}`})).To(Succeed())

			raw, err := conn.QueryChainCode(admin, bnscc.GetResource, []string{"org.acme.Car", "car1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(MatchJSON(`{"make":"volvo"}`))

			raw, err = conn.QueryChainCode(admin, bnscc.GetNetwork, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(ContainSubstring(`"name":"net1"`))
		})

		It("filters resources with a query", func() {
			Expect(conn.InvokeChainCode(admin, bnscc.AddResource, []string{"org.acme.Car", "car1", `{"make":"volvo","seats":5}`})).To(Succeed())
			Expect(conn.InvokeChainCode(admin, bnscc.AddResource, []string{"org.acme.Car", "car2", `{"make":"fiat","seats":2}`})).To(Succeed())

			raw, err := conn.QueryChainCode(admin, bnscc.QueryResources, []string{"org.acme.Car", "seats > _min", `{"min":4}`})
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(MatchJSON(`[{"make":"volvo","seats":5}]`))
		})

		It("surfaces invoke failures", func() {
			Expect(conn.InvokeChainCode(admin, bnscc.AddResource, []string{"org.acme.Car", "car1", `{}`})).To(Succeed())
			err := conn.InvokeChainCode(admin, bnscc.AddResource, []string{"org.acme.Car", "car1", `{}`})
			Expect(err).To(MatchError("chaincode returned status 409: resource org.acme.Car#car1 already exists"))
		})

		It("fails for unbound contexts", func() {
			sc, err := conn.Login("admin", "adminpw")
			Expect(err).NotTo(HaveOccurred())

			_, err = conn.QueryChainCode(sc, bnscc.Ping, nil)
			Expect(err).To(Equal(chaincode.ChaincodeNotFoundError{}))
			Expect(conn.InvokeChainCode(nil, bnscc.Ping, nil)).To(Equal(chaincode.ChaincodeNotFoundError{}))
			_, err = conn.Ping(sc)
			Expect(err).To(HaveOccurred())
		})

		It("returns an empty transaction id", func() {
			txID, err := conn.CreateTransactionID(admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(txID).To(BeEmpty())
		})

		It("installs nothing", func() {
			Expect(conn.Install(admin, "net1", connector.InstallOptions{})).To(Succeed())
		})
	})

	Describe("Undeploy", func() {
		It("removes the network and its chaincode", func() {
			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
			chaincodeID := admin.ChaincodeID()

			Expect(conn.Undeploy(admin, "net1")).To(Succeed())

			_, ok := registry.GetBusinessNetwork("net1", "defaultProfile")
			Expect(ok).To(BeFalse())
			_, err := conn.QueryChainCode(admin, bnscc.Ping, nil)
			Expect(err).To(Equal(chaincode.ChaincodeNotFoundError{ChaincodeID: chaincodeID}))

			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
			Expect(admin.ChaincodeID()).NotTo(Equal(chaincodeID))
		})

		It("ignores unknown networks", func() {
			Expect(conn.Undeploy(admin, "missing")).To(Succeed())
		})
	})

	Describe("Reset", func() {
		It("forgets every network", func() {
			Expect(conn.Start(admin, "net1", startTransaction("net1"), connector.StartOptions{})).To(Succeed())
			registry.Reset()

			_, err := conn.QueryChainCode(admin, bnscc.Ping, nil)
			Expect(err).To(BeAssignableToTypeOf(chaincode.ChaincodeNotFoundError{}))
		})
	})
})

var _ = Describe("Connection with a fake engine", func() {
	var (
		engine     *mock.Engine
		launcher   *mock.Launcher
		identities *cmock.IdentityManager
		registry   *chaincode.Registry
		conn       *connector.Connection
		sc         *connector.SecurityContext
	)

	BeforeEach(func() {
		engine = &mock.Engine{}
		container := &mock.Container{}
		container.UUIDReturns("cc-1")
		launcher = &mock.Launcher{}
		launcher.CreateContainerReturns(container, nil)
		launcher.CreateEngineReturns(engine, nil)
		registry = chaincode.NewRegistry(launcher, nil)

		identities = &cmock.IdentityManager{}
		identities.TestIdentityReturns(&identity.Identity{Name: "admin", Identifier: "abc"}, nil)

		conn = connector.NewConnection(connector.Profile{Name: "p", MSPID: "Org1MSP"}, "", identities, registry, nil, connector.NewMetrics(&disabled.Provider{}))
		var err error
		sc, err = conn.Login("admin", "adminpw")
		Expect(err).NotTo(HaveOccurred())
	})

	It("dispatches to the engine created by start", func() {
		engine.QueryReturns(map[string]interface{}{"answer": 42}, nil)

		Expect(conn.Start(sc, "net1", "{}", connector.StartOptions{})).To(Succeed())
		ctx, fn, args := engine.InitArgsForCall(0)
		Expect(fn).To(Equal("init"))
		Expect(args).To(Equal([]string{"{}"}))
		Expect(ctx.IdentityService().Identifier()).To(Equal("abc"))
		Expect(ctx.Connection()).To(Equal(chaincode.ConnectionInfo{Profile: "p", Network: "net1", MSPID: "Org1MSP"}))

		raw, err := conn.QueryChainCode(sc, "lookup", []string{"a"})
		Expect(err).NotTo(HaveOccurred())
		Expect(raw).To(MatchJSON(`{"answer":42}`))

		qctx, fn, args := engine.QueryArgsForCall(0)
		Expect(fn).To(Equal("lookup"))
		Expect(args).To(Equal([]string{"a"}))
		Expect(qctx).NotTo(BeIdenticalTo(ctx))
		Expect(qctx.TxID()).NotTo(Equal(ctx.TxID()))

		engine.InvokeReturns("ignored", nil)
		Expect(conn.InvokeChainCode(sc, "update", nil)).To(Succeed())
		Expect(engine.InvokeCallCount()).To(Equal(1))
		Expect(launcher.CreateEngineCallCount()).To(Equal(1))
	})

	It("translates generic already exists failures", func() {
		engine.InitReturns(&chaincode.EngineError{Status: 500, Message: "business network net1 already exists"})

		err := conn.Start(sc, "net1", "{}", connector.StartOptions{})
		Expect(err).To(Equal(connector.NetworkAlreadyExistsError{Network: "net1"}))
		Expect(registry.BusinessNetworks()).To(HaveLen(1))
		Expect(sc.ChaincodeID()).To(BeEmpty())
	})

	It("propagates launch failures", func() {
		launcher.CreateContainerReturns(nil, errors.New("no room"))

		err := conn.Start(sc, "net1", "{}", connector.StartOptions{})
		Expect(err).To(MatchError("failed to launch business network [net1]: failed to create container: no room"))
	})

	It("propagates context failures", func() {
		conn = connector.NewConnection(connector.Profile{Name: "p"}, "", identities, registry,
			func(chaincode.Engine, *identity.Identity, chaincode.ConnectionInfo) (*chaincode.Context, error) {
				return nil, errors.New("no context")
			},
			connector.NewMetrics(&disabled.Provider{}),
		)
		err := conn.Start(sc, "net1", "{}", connector.StartOptions{})
		Expect(err).To(MatchError("no context"))
		Expect(engine.InitCallCount()).To(Equal(0))
		Expect(registry.BusinessNetworks()).To(BeEmpty())
	})

	It("propagates login failures", func() {
		identities.TestIdentityReturns(nil, identity.AuthenticationFailedError{Name: "bob1"})
		_, err := conn.Login("bob1", "blahblah")
		Expect(err).To(Equal(identity.AuthenticationFailedError{Name: "bob1"}))
		name, secret := identities.TestIdentityArgsForCall(1)
		Expect(name).To(Equal("bob1"))
		Expect(secret).To(Equal("blahblah"))
	})

	It("works without metrics", func() {
		conn = connector.NewConnection(connector.Profile{Name: "p"}, "", identities, registry, nil, nil)

		sc, err := conn.Login("admin", "adminpw")
		Expect(err).NotTo(HaveOccurred())
		Expect(conn.Start(sc, "net1", "{}", connector.StartOptions{})).To(Succeed())
		Expect(conn.InvokeChainCode(sc, "update", nil)).To(Succeed())
	})

	It("records metrics", func() {
		logins := &metricsfakes.Counter{}
		logins.WithReturns(logins)
		requests := &metricsfakes.Counter{}
		requests.WithReturns(requests)
		duration := &metricsfakes.Histogram{}
		duration.WithReturns(duration)

		conn = connector.NewConnection(connector.Profile{Name: "p"}, "", identities, registry, nil, &connector.Metrics{
			Logins:           logins,
			DispatchRequests: requests,
			DispatchDuration: duration,
		})

		sc, err := conn.Login("admin", "adminpw")
		Expect(err).NotTo(HaveOccurred())
		Expect(logins.WithArgsForCall(0)).To(Equal([]string{"profile", "p", "success", "true"}))

		_, err = conn.QueryChainCode(sc, "ping", nil)
		Expect(err).To(HaveOccurred())
		Expect(requests.WithArgsForCall(0)).To(Equal([]string{"type", "query", "success", "false"}))
		Expect(duration.ObserveCallCount()).To(Equal(1))
	})
})
