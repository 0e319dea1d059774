/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import "github.com/hyperledger/fabric-lib-go/common/metrics"

var (
	identitiesCreated = metrics.CounterOpts{
		Namespace:    "identity",
		Name:         "created",
		Help:         "The number of identities persisted.",
		LabelNames:   []string{"kind"},
		StatsdFormat: "%{#fqname}.%{kind}",
	}
	authentications = metrics.CounterOpts{
		Namespace:    "identity",
		Name:         "authentications",
		Help:         "The number of identity authentication attempts.",
		LabelNames:   []string{"success"},
		StatsdFormat: "%{#fqname}.%{success}",
	}
)

type Metrics struct {
	IdentitiesCreated metrics.Counter
	Authentications   metrics.Counter
}

func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		IdentitiesCreated: p.NewCounter(identitiesCreated),
		Authentications:   p.NewCounter(authentications),
	}
}
