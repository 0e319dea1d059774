/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import (
	"sort"
	"sync"

	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/identity"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
)

// Manager hands out connections for the configured connection profiles and
// owns one identity manager per profile.
type Manager struct {
	Registry        *chaincode.Registry
	Collections     identity.CollectionProvider
	Generator       identity.CertificateGenerator
	ContextFactory  ContextFactory
	MetricsProvider metrics.Provider

	initOnce        sync.Once
	metrics         *Metrics
	identityMetrics *identity.Metrics

	mutex      sync.Mutex
	profiles   map[string]Profile
	identities map[string]*identity.Manager
}

// NewManager creates a manager for profiles.
func NewManager(profiles []Profile, registry *chaincode.Registry, collections identity.CollectionProvider, generator identity.CertificateGenerator, metricsProvider metrics.Provider) *Manager {
	m := &Manager{
		Registry:        registry,
		Collections:     collections,
		Generator:       generator,
		MetricsProvider: metricsProvider,
		profiles:        map[string]Profile{},
		identities:      map[string]*identity.Manager{},
	}
	for _, p := range profiles {
		m.profiles[p.Name] = p
	}
	return m
}

func (m *Manager) init() {
	m.initOnce.Do(func() {
		if m.MetricsProvider == nil {
			m.MetricsProvider = &disabled.Provider{}
		}
		m.metrics = NewMetrics(m.MetricsProvider)
		m.identityMetrics = identity.NewMetrics(m.MetricsProvider)
	})
}

// Connect returns a connection to networkID under the named profile. An
// empty networkID returns a connection used to start business networks.
func (m *Manager) Connect(profile, networkID string) (*Connection, error) {
	m.init()
	p, ok := m.profile(profile)
	if !ok {
		return nil, UnknownProfileError{Profile: profile}
	}
	identities, err := m.IdentityManager(profile)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Connecting to business network [%s] under connection profile [%s]", networkID, profile)
	return NewConnection(p, networkID, identities, m.Registry, m.ContextFactory, m.metrics), nil
}

// IdentityManager returns the identity manager of the named profile.
func (m *Manager) IdentityManager(profile string) (*identity.Manager, error) {
	m.init()
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.profiles[profile]; !ok {
		return nil, UnknownProfileError{Profile: profile}
	}
	if im, ok := m.identities[profile]; ok {
		return im, nil
	}
	im := identity.NewManager(profile, m.Collections, m.Generator, m.identityMetrics)
	m.identities[profile] = im
	return im, nil
}

// Profiles returns the configured profiles ordered by name.
func (m *Manager) Profiles() []Profile {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	profiles := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles
}

func (m *Manager) profile(name string) (Profile, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	p, ok := m.profiles[name]
	return p, ok
}
