/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package certgen

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"

	"github.com/hyperledger/fabric-lib-go/bccsp/utils"
	"github.com/pkg/errors"
)

// Certificate is a parsed enrollment certificate together with the values
// derived from it.
type Certificate struct {
	cert       *x509.Certificate
	pemBytes   []byte
	identifier string
	issuer     string
	publicKey  []byte
}

// ParseCertificate parses the first PEM block of pemBytes as a certificate;
// anything after it, such as a private key, is dropped. The identifier is the
// hex encoded SHA-256 of the DER certificate, the issuer the hex encoded
// SHA-256 of the DER issuer name.
func ParseCertificate(pemBytes []byte) (*Certificate, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("certificate is not PEM encoded")
	}
	if block.Type != "CERTIFICATE" {
		return nil, errors.Errorf("unexpected PEM block type [%s]", block.Type)
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse certificate")
	}

	publicKey, err := utils.PublicKeyToPEM(cert.PublicKey, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to encode certificate public key")
	}

	id := sha256.Sum256(cert.Raw)
	issuer := sha256.Sum256(cert.RawIssuer)

	return &Certificate{
		cert:       cert,
		pemBytes:   pem.EncodeToMemory(block),
		identifier: hex.EncodeToString(id[:]),
		issuer:     hex.EncodeToString(issuer[:]),
		publicKey:  publicKey,
	}, nil
}

// Identifier returns the canonical identifier of the certificate.
func (c *Certificate) Identifier() string { return c.identifier }

// Issuer returns the identifier of the issuing authority.
func (c *Certificate) Issuer() string { return c.issuer }

// Name returns the subject common name.
func (c *Certificate) Name() string { return c.cert.Subject.CommonName }

// PublicKey returns the PEM encoded public key.
func (c *Certificate) PublicKey() []byte { return c.publicKey }

// PEM returns the PEM encoded certificate block.
func (c *Certificate) PEM() []byte { return c.pemBytes }
