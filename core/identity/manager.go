/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"sync"

	"github.com/hashicorp/go-uuid"
	"github.com/hyperledger/fabric-bnc/common/crypto/certgen"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("identity")

const secretLength = 8

//go:generate counterfeiter -o mock/certificate_generator.go -fake-name CertificateGenerator . CertificateGenerator

// CertificateGenerator issues a certificate for a common name.
type CertificateGenerator interface {
	Generate(commonName string) (*certgen.CertKeyPair, error)
}

// Manager issues, imports and authenticates the identities of one
// connection profile.
type Manager struct {
	profile   string
	provider  CollectionProvider
	generator CertificateGenerator
	metrics   *Metrics

	mutex sync.Mutex
	store *Store
}

// NewManager creates an identity manager for a connection profile. A nil
// generator issues self-signed certificates; nil metrics are disabled.
func NewManager(profile string, provider CollectionProvider, generator CertificateGenerator, metrics *Metrics) *Manager {
	if generator == nil {
		generator = certgen.SelfSigned{}
	}
	if metrics == nil {
		metrics = NewMetrics(&disabled.Provider{})
	}
	return &Manager{
		profile:   profile,
		provider:  provider,
		generator: generator,
		metrics:   metrics,
	}
}

// Profile returns the connection profile the manager serves.
func (m *Manager) Profile() string {
	return m.profile
}

// Identities returns the identity store of the profile, opening it on first
// use. Later calls return the same store.
func (m *Manager) Identities() (*Store, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.store != nil {
		return m.store, nil
	}

	c, err := m.provider.OpenCollection(CollectionName(m.profile))
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to open identities of profile [%s]", m.profile)
	}
	m.store = NewStore(c)
	return m.store, nil
}

// GetIdentity returns the identity stored under name. The admin identity is
// created on first lookup.
func (m *Manager) GetIdentity(name string) (*Identity, error) {
	store, err := m.Identities()
	if err != nil {
		return nil, err
	}

	id, err := store.Get(name)
	if _, ok := err.(IdentityNotFoundError); ok && name == AdminName {
		return m.bootstrapAdmin(store)
	}
	return id, err
}

func (m *Manager) bootstrapAdmin(store *Store) (*Identity, error) {
	admin, err := m.newIdentity(AdminName, AdminSecret, map[string]interface{}{IssuerOption: true})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create admin identity")
	}

	err = store.Add(admin, AdminName, admin.Identifier)
	if _, ok := err.(DuplicateIdentityError); ok {
		// created concurrently
		return store.Get(AdminName)
	}
	if err != nil {
		return nil, err
	}

	logger.Infof("Created admin identity [%s] for profile [%s]", admin.Identifier, m.profile)
	m.metrics.IdentitiesCreated.With("kind", "admin").Add(1)
	return admin, nil
}

// TestIdentity authenticates name with secret. Imported identities and the
// admin identity authenticate with any secret.
func (m *Manager) TestIdentity(name, secret string) (*Identity, error) {
	id, err := m.GetIdentity(name)
	if err != nil {
		m.metrics.Authentications.With("success", "false").Add(1)
		return nil, err
	}

	if !id.Imported && name != AdminName && id.Secret != secret {
		logger.Debugf("Secret mismatch for identity [%s]", name)
		m.metrics.Authentications.With("success", "false").Add(1)
		return nil, AuthenticationFailedError{Name: name}
	}

	m.metrics.Authentications.With("success", "true").Add(1)
	return id, nil
}

// CreateIdentity issues a new identity on behalf of current, which must hold
// the issuer option. Issuing a name that already exists returns the existing
// credentials.
func (m *Manager) CreateIdentity(current *Identity, name string, options map[string]interface{}) (*Credentials, error) {
	if !current.IsIssuer() {
		issuer := ""
		if current != nil {
			issuer = current.Name
		}
		return nil, PermissionDeniedError{Identity: issuer, Target: name}
	}

	store, err := m.Identities()
	if err != nil {
		return nil, err
	}

	exists, err := store.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return m.existingCredentials(store, name)
	}

	secret, err := generateSecret()
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = map[string]interface{}{}
	}
	id, err := m.newIdentity(name, secret, options)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create identity [%s]", name)
	}

	err = store.Add(id, name, id.Identifier)
	if _, ok := err.(DuplicateIdentityError); ok {
		return m.existingCredentials(store, name)
	}
	if err != nil {
		return nil, err
	}

	logger.Infof("Identity [%s] issued identity [%s]", current.Name, name)
	m.metrics.IdentitiesCreated.With("kind", "issued").Add(1)
	return &Credentials{UserID: name, UserSecret: secret}, nil
}

func (m *Manager) existingCredentials(store *Store, name string) (*Credentials, error) {
	existing, err := store.Get(name)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Identity [%s] already exists", name)
	return &Credentials{UserID: name, UserSecret: existing.Secret}, nil
}

// ImportIdentity stores an externally issued certificate under name.
// Importing a name that already exists returns the existing identity.
func (m *Manager) ImportIdentity(name string, certificate []byte, options map[string]interface{}) (*Identity, error) {
	if name == "" {
		return nil, errors.New("identity name must not be empty")
	}

	cert, err := certgen.ParseCertificate(certificate)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to import identity [%s]", name)
	}

	store, err := m.Identities()
	if err != nil {
		return nil, err
	}

	if options == nil {
		options = map[string]interface{}{}
	}
	id := &Identity{
		Identifier:  cert.Identifier(),
		Name:        name,
		Issuer:      cert.Issuer(),
		Certificate: string(cert.PEM()),
		Imported:    true,
		Options:     options,
	}

	err = store.Add(id, name, id.Identifier)
	if dup, ok := err.(DuplicateIdentityError); ok {
		existing, getErr := store.Get(name)
		if getErr != nil {
			// the certificate is already held under another name
			return nil, dup
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	logger.Infof("Imported identity [%s] with identifier [%s]", name, id.Identifier)
	m.metrics.IdentitiesCreated.With("kind", "imported").Add(1)
	return id, nil
}

// RegistryCheckRequired reports whether participants must be checked against
// the participant registry of the business network.
func (m *Manager) RegistryCheckRequired() bool {
	return true
}

func (m *Manager) newIdentity(name, secret string, options map[string]interface{}) (*Identity, error) {
	kp, err := m.generator.Generate(name)
	if err != nil {
		return nil, err
	}
	cert, err := certgen.ParseCertificate(kp.Cert)
	if err != nil {
		return nil, err
	}
	return &Identity{
		Identifier:  cert.Identifier(),
		Name:        cert.Name(),
		Issuer:      cert.Issuer(),
		Secret:      secret,
		Certificate: string(cert.PEM()),
		Options:     options,
	}, nil
}

func generateSecret() (string, error) {
	u, err := uuid.GenerateUUID()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate secret")
	}
	return u[:secretLength], nil
}
