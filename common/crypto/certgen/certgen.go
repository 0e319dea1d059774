/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package certgen

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"time"

	"github.com/hyperledger/fabric-lib-go/bccsp/utils"
	"github.com/pkg/errors"
)

// CertKeyPair denotes an enrollment certificate and the key pair it binds,
// all PEM encoded
type CertKeyPair struct {
	// Cert is the certificate, PEM encoded
	Cert []byte
	// Key is the private key corresponding to the certificate, PEM encoded
	Key []byte
	// PublicKey is the public key embedded in the certificate, PEM encoded
	PublicKey []byte

	crypto.Signer
	X509Cert *x509.Certificate
}

// CA defines a certificate authority that can generate
// certificates signed by it
type CA interface {
	// CertBytes returns the certificate of the CA in PEM encoding
	CertBytes() []byte

	// Generate returns a certificate and key pair for the given common name,
	// signed by the CA
	Generate(commonName string) (*CertKeyPair, error)
}

type ca struct {
	caCert *CertKeyPair
}

// NewCA creates a self-signed certificate authority with the given name
func NewCA(name string) (CA, error) {
	caCert, err := newCertKeyPair(name, true, nil, nil)
	if err != nil {
		return nil, err
	}
	return &ca{caCert: caCert}, nil
}

func (c *ca) CertBytes() []byte {
	return c.caCert.Cert
}

func (c *ca) Generate(commonName string) (*CertKeyPair, error) {
	return newCertKeyPair(commonName, false, c.caCert.Signer, c.caCert.X509Cert)
}

// SelfSigned generates certificates that are their own issuer.
type SelfSigned struct{}

// Generate returns a self-signed certificate and key pair for the given
// common name.
func (SelfSigned) Generate(commonName string) (*CertKeyPair, error) {
	return newCertKeyPair(commonName, false, nil, nil)
}

func newCertKeyPair(commonName string, isCA bool, certSigner crypto.Signer, parent *x509.Certificate) (*CertKeyPair, error) {
	if commonName == "" {
		return nil, errors.New("common name must not be empty")
	}

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}

	template, err := x509Template()
	if err != nil {
		return nil, err
	}
	template.Subject = pkix.Name{
		CommonName:   commonName,
		Organization: []string{"Hyperledger"},
	}
	template.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}
	if isCA {
		template.IsCA = true
		template.KeyUsage |= x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	}

	signer := &ECDSASigner{PrivateKey: privateKey}
	if parent == nil || certSigner == nil {
		parent = &template
		certSigner = signer
	}

	rawBytes, err := x509.CreateCertificate(rand.Reader, &template, parent, &privateKey.PublicKey, certSigner)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create certificate for [%s]", commonName)
	}
	cert, err := x509.ParseCertificate(rawBytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse generated certificate")
	}

	keyPEM, err := utils.PrivateKeyToPEM(privateKey, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to encode private key")
	}
	pubPEM, err := utils.PublicKeyToPEM(&privateKey.PublicKey, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to encode public key")
	}

	return &CertKeyPair{
		Cert:      pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: rawBytes}),
		Key:       keyPEM,
		PublicKey: pubPEM,
		Signer:    signer,
		X509Cert:  cert,
	}, nil
}

func x509Template() (x509.Certificate, error) {
	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return x509.Certificate{}, errors.Wrap(err, "failed to generate serial number")
	}

	now := time.Now()
	return x509.Certificate{
		SerialNumber:          serialNumber,
		NotBefore:             now.Add(-5 * time.Minute),
		NotAfter:              now.Add(3650 * 24 * time.Hour), // ~ten years
		KeyUsage:              x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}, nil
}
