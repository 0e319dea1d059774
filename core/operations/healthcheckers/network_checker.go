/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthcheckers

import (
	"context"
	"fmt"
	"sort"

	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/operations/healthz"
)

// NetworkLister lists the bound business networks.
type NetworkLister interface {
	BusinessNetworks() []chaincode.Binding
}

// NetworkChecker verifies that the business networks started at boot are
// still bound. Missing networks degrade readiness without failing it since
// they may have been undeployed on purpose.
type NetworkChecker struct {
	registry NetworkLister
	expected []chaincode.Binding
}

func NewNetworkChecker(registry NetworkLister, expected []chaincode.Binding) *NetworkChecker {
	return &NetworkChecker{
		registry: registry,
		expected: expected,
	}
}

func (n *NetworkChecker) ReadinessCheck(ctx context.Context) error {
	if n.registry == nil {
		return fmt.Errorf("chaincode registry not initialized")
	}
	return nil
}

func (n *NetworkChecker) GetStatus() healthz.ComponentStatus {
	if n.registry == nil {
		return healthz.ComponentStatus{
			Status:  healthz.StatusUnavailable,
			Message: "Chaincode registry not initialized",
		}
	}

	bound := map[string]bool{}
	bindings := n.registry.BusinessNetworks()
	for _, b := range bindings {
		bound[b.Network+"@"+b.Profile] = true
	}

	var missing []string
	for _, b := range n.expected {
		key := b.Network + "@" + b.Profile
		if !bound[key] {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)

	if len(missing) > 0 {
		return healthz.ComponentStatus{
			Status:  healthz.StatusDegraded,
			Message: fmt.Sprintf("%d of %d bootstrap business network(s) not running", len(missing), len(n.expected)),
			Details: map[string]interface{}{
				"missing":  missing,
				"networks": len(bindings),
			},
		}
	}

	return healthz.ComponentStatus{
		Status:  healthz.StatusOK,
		Message: fmt.Sprintf("%d business network(s) running", len(bindings)),
		Details: map[string]interface{}{
			"networks": len(bindings),
		},
	}
}
