/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"crypto/x509"
	"encoding/pem"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/msp"
)

// ExpiresAt returns when the given serialized identity expires, or a zero
// time.Time in case we cannot determine that
func ExpiresAt(identityBytes []byte) time.Time {
	sID := &msp.SerializedIdentity{}
	if err := proto.Unmarshal(identityBytes, sID); err != nil {
		return time.Time{}
	}
	return CertExpiresAt(sID.IdBytes)
}

// CertExpiresAt returns the NotAfter time of a PEM encoded certificate, or a
// zero time.Time if it cannot be parsed.
func CertExpiresAt(certPEM []byte) time.Time {
	bl, _ := pem.Decode(certPEM)
	if bl == nil {
		return time.Time{}
	}
	cert, err := x509.ParseCertificate(bl.Bytes)
	if err != nil {
		return time.Time{}
	}
	return cert.NotAfter
}
