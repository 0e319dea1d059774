/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package certgen

import (
	"crypto"
	"crypto/ecdsa"
	"encoding/asn1"
	"io"
	"math/big"
)

// ECDSASigner implements the crypto.Signer interface for ECDSA keys. The
// Sign method normalizes signatures to their low-S form.
type ECDSASigner struct {
	PrivateKey *ecdsa.PrivateKey
}

// Public returns the ecdsa.PublicKey associated with PrivateKey.
func (e *ECDSASigner) Public() crypto.PublicKey {
	return &e.PrivateKey.PublicKey
}

// Sign signs the digest and ensures that signatures use the Low S value.
func (e *ECDSASigner) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	r, s, err := ecdsa.Sign(rand, e.PrivateKey, digest)
	if err != nil {
		return nil, err
	}

	sig := toLowS(e.PrivateKey.PublicKey, ecdsaSignature{R: r, S: s})
	return asn1.Marshal(sig)
}

// s is kept at most half the order of the curve
func toLowS(key ecdsa.PublicKey, sig ecdsaSignature) ecdsaSignature {
	halfOrder := new(big.Int).Div(key.Curve.Params().N, big.NewInt(2))
	if sig.S.Cmp(halfOrder) == 1 {
		sig.S.Sub(key.Params().N, sig.S)
	}
	return sig
}

type ecdsaSignature struct {
	R, S *big.Int
}
