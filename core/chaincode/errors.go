/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import "fmt"

// ChaincodeNotFoundError is returned when no instance is registered under a
// chaincode id.
type ChaincodeNotFoundError struct {
	ChaincodeID string
}

func (e ChaincodeNotFoundError) Error() string {
	if e.ChaincodeID == "" {
		return "no chaincode is bound to the security context"
	}
	return fmt.Sprintf("chaincode [%s] not found", e.ChaincodeID)
}
