/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode_test

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/chaincode/mock"
	"github.com/hyperledger/fabric-lib-go/common/metrics/metricsfakes"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

var _ = Describe("Registry", func() {
	var (
		launcher *mock.Launcher
		registry *chaincode.Registry
		created  int32
	)

	BeforeEach(func() {
		created = 0
		launcher = &mock.Launcher{}
		launcher.CreateContainerStub = func() (chaincode.Container, error) {
			n := atomic.AddInt32(&created, 1)
			c := &stoppableContainer{}
			c.UUIDReturns(fmt.Sprintf("cc-%d", n))
			c.NameReturns("bnscc")
			return c, nil
		}
		launcher.CreateEngineReturns(&mock.Engine{}, nil)
		registry = chaincode.NewRegistry(launcher, nil)
	})

	Describe("BusinessNetwork bindings", func() {
		It("returns not found for unknown networks", func() {
			_, ok := registry.GetBusinessNetwork("net", "profile")
			Expect(ok).To(BeFalse())
		})

		It("adds and resolves bindings per profile", func() {
			registry.AddBusinessNetwork("net", "profile1", "cc-1")
			registry.AddBusinessNetwork("net", "profile2", "cc-2")

			id, ok := registry.GetBusinessNetwork("net", "profile1")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("cc-1"))

			id, ok = registry.GetBusinessNetwork("net", "profile2")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("cc-2"))
		})

		It("cascades deletes to the chaincode and stops its container", func() {
			c := &stoppableContainer{}
			registry.AddChaincode("cc-1", c, &mock.Engine{})
			registry.AddBusinessNetwork("net", "profile", "cc-1")

			registry.DeleteBusinessNetwork("net", "profile")

			_, ok := registry.GetBusinessNetwork("net", "profile")
			Expect(ok).To(BeFalse())
			_, err := registry.GetChaincode("cc-1")
			Expect(err).To(Equal(chaincode.ChaincodeNotFoundError{ChaincodeID: "cc-1"}))
			Expect(c.StopCount()).To(Equal(1))
		})

		It("tolerates containers that fail to stop", func() {
			c := &stoppableContainer{stopErr: errors.New("boom")}
			registry.AddChaincode("cc-1", c, &mock.Engine{})
			registry.AddBusinessNetwork("net", "profile", "cc-1")

			registry.DeleteBusinessNetwork("net", "profile")
			Expect(c.StopCount()).To(Equal(1))
			Expect(registry.BusinessNetworks()).To(BeEmpty())
		})

		It("ignores deletes of unknown bindings", func() {
			registry.DeleteBusinessNetwork("missing", "profile")
			Expect(registry.BusinessNetworks()).To(BeEmpty())
		})

		It("lists bindings in order", func() {
			registry.AddBusinessNetwork("b", "p1", "cc-3")
			registry.AddBusinessNetwork("a", "p2", "cc-2")
			registry.AddBusinessNetwork("a", "p1", "cc-1")

			Expect(registry.BusinessNetworks()).To(Equal([]chaincode.Binding{
				{Network: "a", Profile: "p1", ChaincodeID: "cc-1"},
				{Network: "a", Profile: "p2", ChaincodeID: "cc-2"},
				{Network: "b", Profile: "p1", ChaincodeID: "cc-3"},
			}))
		})
	})

	Describe("Chaincodes", func() {
		It("returns a typed error for unknown ids", func() {
			_, err := registry.GetChaincode("nope")
			Expect(err).To(MatchError("chaincode [nope] not found"))
		})

		It("returns the registered instance", func() {
			c := &mock.Container{}
			e := &mock.Engine{}
			registry.AddChaincode("cc-1", c, e)

			instance, err := registry.GetChaincode("cc-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(instance.ID).To(Equal("cc-1"))
			Expect(instance.Container).To(BeIdenticalTo(c))
			Expect(instance.Engine).To(BeIdenticalTo(e))
		})
	})

	Describe("Reset", func() {
		It("clears bindings and chaincodes", func() {
			registry.AddChaincode("cc-1", &mock.Container{}, &mock.Engine{})
			registry.AddBusinessNetwork("net", "profile", "cc-1")

			registry.Reset()

			_, ok := registry.GetBusinessNetwork("net", "profile")
			Expect(ok).To(BeFalse())
			_, err := registry.GetChaincode("cc-1")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Factories", func() {
		It("wraps launcher failures", func() {
			launcher.CreateContainerStub = nil
			launcher.CreateContainerReturns(nil, errors.New("no room"))
			_, err := registry.CreateContainer()
			Expect(err).To(MatchError("failed to create container: no room"))

			c := &mock.Container{}
			c.UUIDReturns("cc-9")
			launcher.CreateEngineReturns(nil, errors.New("bad image"))
			_, err = registry.CreateEngine(c)
			Expect(err).To(MatchError("failed to create engine for container cc-9: bad image"))
		})
	})

	Describe("LaunchBusinessNetwork", func() {
		It("creates and binds a new instance", func() {
			instance, isNew, err := registry.LaunchBusinessNetwork("net", "profile")
			Expect(err).NotTo(HaveOccurred())
			Expect(isNew).To(BeTrue())
			Expect(instance.ID).To(Equal("cc-1"))

			id, ok := registry.GetBusinessNetwork("net", "profile")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("cc-1"))

			got, err := registry.GetChaincode("cc-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(instance))
			Expect(launcher.CreateEngineArgsForCall(0)).To(BeIdenticalTo(instance.Container))
		})

		It("reuses an existing instance", func() {
			first, _, err := registry.LaunchBusinessNetwork("net", "profile")
			Expect(err).NotTo(HaveOccurred())

			second, isNew, err := registry.LaunchBusinessNetwork("net", "profile")
			Expect(err).NotTo(HaveOccurred())
			Expect(isNew).To(BeFalse())
			Expect(second).To(BeIdenticalTo(first))
			Expect(launcher.CreateContainerCallCount()).To(Equal(1))
		})

		It("relaunches a binding whose chaincode is gone", func() {
			registry.AddBusinessNetwork("net", "profile", "stale")

			instance, isNew, err := registry.LaunchBusinessNetwork("net", "profile")
			Expect(err).NotTo(HaveOccurred())
			Expect(isNew).To(BeTrue())
			id, _ := registry.GetBusinessNetwork("net", "profile")
			Expect(id).To(Equal(instance.ID))
		})

		It("stops the container when the engine cannot be created", func() {
			c := &stoppableContainer{}
			c.UUIDReturns("cc-x")
			launcher.CreateContainerStub = nil
			launcher.CreateContainerReturns(c, nil)
			launcher.CreateEngineReturns(nil, errors.New("bad image"))

			_, _, err := registry.LaunchBusinessNetwork("net", "profile")
			Expect(err).To(MatchError("failed to create engine for container cc-x: bad image"))
			Expect(c.StopCount()).To(Equal(1))
			Expect(registry.BusinessNetworks()).To(BeEmpty())
		})

		It("creates a single instance under concurrent launches", func() {
			var wg sync.WaitGroup
			ids := make([]string, 20)
			for i := range ids {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					instance, _, err := registry.LaunchBusinessNetwork("net", "profile")
					Expect(err).NotTo(HaveOccurred())
					ids[i] = instance.ID
				}(i)
			}
			wg.Wait()

			Expect(launcher.CreateContainerCallCount()).To(Equal(1))
			for _, id := range ids {
				Expect(id).To(Equal("cc-1"))
			}
		})
	})

	Describe("Metrics", func() {
		It("tracks table sizes and launches", func() {
			networks := &metricsfakes.Gauge{}
			chaincodes := &metricsfakes.Gauge{}
			launches := &metricsfakes.Counter{}
			launches.WithReturns(launches)
			provider := &metricsfakes.Provider{}
			provider.NewGaugeReturnsOnCall(0, networks)
			provider.NewGaugeReturnsOnCall(1, chaincodes)
			provider.NewCounterReturns(launches)

			registry = chaincode.NewRegistry(launcher, provider)
			_, _, err := registry.LaunchBusinessNetwork("net", "profile")
			Expect(err).NotTo(HaveOccurred())

			Expect(networks.SetArgsForCall(networks.SetCallCount() - 1)).To(Equal(float64(1)))
			Expect(chaincodes.SetArgsForCall(chaincodes.SetCallCount() - 1)).To(Equal(float64(1)))
			Expect(launches.WithArgsForCall(0)).To(Equal([]string{"created", "true"}))

			registry.DeleteBusinessNetwork("net", "profile")
			Expect(networks.SetArgsForCall(networks.SetCallCount() - 1)).To(Equal(float64(0)))
			Expect(chaincodes.SetArgsForCall(chaincodes.SetCallCount() - 1)).To(Equal(float64(0)))
		})
	})
})
