/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"sort"
	"sync"

	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("chaincode")

// Instance is a running business network runtime.
type Instance struct {
	ID        string
	Container Container
	Engine    Engine
}

// Binding maps a business network started under a connection profile to the
// chaincode instance running it.
type Binding struct {
	Network     string `json:"network"`
	Profile     string `json:"profile"`
	ChaincodeID string `json:"chaincodeID"`
}

// Registry maps chaincode ids to running instances and business networks to
// chaincode ids. It is safe for concurrent use.
type Registry struct {
	launcher Launcher
	metrics  *RegistryMetrics

	mutex      sync.RWMutex
	chaincodes map[string]*Instance
	networks   map[string]Binding
}

// NewRegistry creates an empty registry. A nil metrics provider disables
// metrics.
func NewRegistry(launcher Launcher, metricsProvider metrics.Provider) *Registry {
	if metricsProvider == nil {
		metricsProvider = &disabled.Provider{}
	}
	return &Registry{
		launcher:   launcher,
		metrics:    NewRegistryMetrics(metricsProvider),
		chaincodes: map[string]*Instance{},
		networks:   map[string]Binding{},
	}
}

func bindingKey(network, profile string) string {
	return network + "@" + profile
}

// Reset drops every binding and chaincode instance.
func (r *Registry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.chaincodes = map[string]*Instance{}
	r.networks = map[string]Binding{}
	r.updateGauges()
	logger.Debug("Registry reset")
}

// AddBusinessNetwork binds network under profile to chaincodeID, replacing
// any existing binding.
func (r *Registry) AddBusinessNetwork(network, profile, chaincodeID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.networks[bindingKey(network, profile)] = Binding{Network: network, Profile: profile, ChaincodeID: chaincodeID}
	r.updateGauges()
}

// GetBusinessNetwork returns the chaincode id bound to network under profile.
func (r *Registry) GetBusinessNetwork(network, profile string) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	b, ok := r.networks[bindingKey(network, profile)]
	return b.ChaincodeID, ok
}

// DeleteBusinessNetwork removes the binding of network under profile along
// with its chaincode instance. Deleting an unknown binding does nothing.
func (r *Registry) DeleteBusinessNetwork(network, profile string) {
	r.mutex.Lock()
	key := bindingKey(network, profile)
	b, ok := r.networks[key]
	if !ok {
		r.mutex.Unlock()
		return
	}
	delete(r.networks, key)
	instance := r.chaincodes[b.ChaincodeID]
	delete(r.chaincodes, b.ChaincodeID)
	r.updateGauges()
	r.mutex.Unlock()

	if instance == nil {
		return
	}
	if s, ok := instance.Container.(Stopper); ok {
		if err := s.Stop(); err != nil {
			logger.Warnf("Failed to stop container %s of business network %s: %s", instance.ID, key, err)
		}
	}
}

// AddChaincode registers an instance under chaincodeID.
func (r *Registry) AddChaincode(chaincodeID string, container Container, engine Engine) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.chaincodes[chaincodeID] = &Instance{ID: chaincodeID, Container: container, Engine: engine}
	r.updateGauges()
}

// GetChaincode returns the instance registered under chaincodeID.
func (r *Registry) GetChaincode(chaincodeID string) (*Instance, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	instance, ok := r.chaincodes[chaincodeID]
	if !ok {
		return nil, ChaincodeNotFoundError{ChaincodeID: chaincodeID}
	}
	return instance, nil
}

// CreateContainer creates a fresh container through the launcher.
func (r *Registry) CreateContainer() (Container, error) {
	c, err := r.launcher.CreateContainer()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create container")
	}
	return c, nil
}

// CreateEngine creates the engine bound to container through the launcher.
func (r *Registry) CreateEngine(container Container) (Engine, error) {
	e, err := r.launcher.CreateEngine(container)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create engine for container %s", container.UUID())
	}
	return e, nil
}

// LaunchBusinessNetwork returns the instance bound to network under profile,
// creating and binding a new container and engine if there is none. The
// returned bool reports whether the instance was created by this call.
// Concurrent launches of the same network observe a single instance.
func (r *Registry) LaunchBusinessNetwork(network, profile string) (*Instance, bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := bindingKey(network, profile)
	if b, ok := r.networks[key]; ok {
		if instance, ok := r.chaincodes[b.ChaincodeID]; ok {
			logger.Debugf("Business network %s already bound to chaincode %s", key, b.ChaincodeID)
			r.metrics.Launches.With("created", "false").Add(1)
			return instance, false, nil
		}
		logger.Warnf("Business network %s is bound to missing chaincode %s, relaunching", key, b.ChaincodeID)
	}

	container, err := r.CreateContainer()
	if err != nil {
		return nil, false, err
	}
	engine, err := r.CreateEngine(container)
	if err != nil {
		if s, ok := container.(Stopper); ok {
			if stopErr := s.Stop(); stopErr != nil {
				logger.Warnf("Failed to stop container %s: %s", container.UUID(), stopErr)
			}
		}
		return nil, false, err
	}

	instance := &Instance{ID: container.UUID(), Container: container, Engine: engine}
	r.chaincodes[instance.ID] = instance
	r.networks[key] = Binding{Network: network, Profile: profile, ChaincodeID: instance.ID}
	r.updateGauges()
	r.metrics.Launches.With("created", "true").Add(1)

	logger.Infof("Launched chaincode %s for business network %s", instance.ID, key)
	return instance, true, nil
}

// BusinessNetworks returns every binding ordered by network and profile.
func (r *Registry) BusinessNetworks() []Binding {
	r.mutex.RLock()
	bindings := make([]Binding, 0, len(r.networks))
	for _, b := range r.networks {
		bindings = append(bindings, b)
	}
	r.mutex.RUnlock()

	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Network != bindings[j].Network {
			return bindings[i].Network < bindings[j].Network
		}
		return bindings[i].Profile < bindings[j].Profile
	})
	return bindings
}

// must be called with the write lock held
func (r *Registry) updateGauges() {
	r.metrics.BusinessNetworks.Set(float64(len(r.networks)))
	r.metrics.Chaincodes.Set(float64(len(r.chaincodes)))
}
