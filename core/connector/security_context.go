/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import "github.com/hyperledger/fabric-bnc/core/identity"

// SecurityContext is the session of a logged in identity. Once bound to a
// business network it carries the id of the chaincode running it.
type SecurityContext struct {
	identity    *identity.Identity
	network     string
	chaincodeID string
}

// NewSecurityContext creates an unbound session for id.
func NewSecurityContext(id *identity.Identity) *SecurityContext {
	return &SecurityContext{identity: id}
}

func (sc *SecurityContext) Identity() *identity.Identity { return sc.identity }

// Network returns the business network the session is bound to.
func (sc *SecurityContext) Network() string { return sc.network }

// ChaincodeID returns the id of the chaincode the session is bound to, or
// the empty string.
func (sc *SecurityContext) ChaincodeID() string { return sc.chaincodeID }

// Bind binds the session to the chaincode running network.
func (sc *SecurityContext) Bind(network, chaincodeID string) {
	sc.network = network
	sc.chaincodeID = chaincodeID
}
