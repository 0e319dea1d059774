/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import "github.com/hyperledger/fabric-lib-go/common/metrics"

var (
	businessNetworks = metrics.GaugeOpts{
		Namespace:    "registry",
		Name:         "business_networks",
		Help:         "The number of business network bindings.",
		StatsdFormat: "%{#fqname}",
	}
	chaincodes = metrics.GaugeOpts{
		Namespace:    "registry",
		Name:         "chaincodes",
		Help:         "The number of registered chaincode instances.",
		StatsdFormat: "%{#fqname}",
	}
	launches = metrics.CounterOpts{
		Namespace:    "registry",
		Name:         "launches",
		Help:         "The number of business network launches.",
		LabelNames:   []string{"created"},
		StatsdFormat: "%{#fqname}.%{created}",
	}
)

type RegistryMetrics struct {
	BusinessNetworks metrics.Gauge
	Chaincodes       metrics.Gauge
	Launches         metrics.Counter
}

func NewRegistryMetrics(p metrics.Provider) *RegistryMetrics {
	return &RegistryMetrics{
		BusinessNetworks: p.NewGauge(businessNetworks),
		Chaincodes:       p.NewGauge(chaincodes),
		Launches:         p.NewCounter(launches),
	}
}
