/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import "github.com/hyperledger/fabric-lib-go/common/metrics"

var (
	logins = metrics.CounterOpts{
		Namespace:    "connector",
		Name:         "logins",
		Help:         "The number of login attempts.",
		LabelNames:   []string{"profile", "success"},
		StatsdFormat: "%{#fqname}.%{profile}.%{success}",
	}
	dispatchRequests = metrics.CounterOpts{
		Namespace:    "connector",
		Name:         "dispatch_requests",
		Help:         "The number of chaincode calls dispatched.",
		LabelNames:   []string{"type", "success"},
		StatsdFormat: "%{#fqname}.%{type}.%{success}",
	}
	dispatchDuration = metrics.HistogramOpts{
		Namespace:    "connector",
		Name:         "dispatch_duration",
		Help:         "The time to complete a chaincode call.",
		LabelNames:   []string{"type", "success"},
		StatsdFormat: "%{#fqname}.%{type}.%{success}",
	}
)

type Metrics struct {
	Logins           metrics.Counter
	DispatchRequests metrics.Counter
	DispatchDuration metrics.Histogram
}

func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		Logins:           p.NewCounter(logins),
		DispatchRequests: p.NewCounter(dispatchRequests),
		DispatchDuration: p.NewHistogram(dispatchDuration),
	}
}
