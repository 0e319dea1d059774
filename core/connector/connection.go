/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/identity"
	"github.com/hyperledger/fabric-bnc/core/scc/bnscc"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("connector")

//go:generate counterfeiter -o mock/identity_manager.go -fake-name IdentityManager . IdentityManager

// IdentityManager authenticates the identities of a connection profile.
type IdentityManager interface {
	TestIdentity(name, secret string) (*identity.Identity, error)
}

// ContextFactory builds the execution context of a single chaincode call.
type ContextFactory func(engine chaincode.Engine, id *identity.Identity, connection chaincode.ConnectionInfo) (*chaincode.Context, error)

// Profile is a connection profile.
type Profile struct {
	Name  string `mapstructure:"name"`
	MSPID string `mapstructure:"mspID"`
}

// StartOptions tune a business network start.
type StartOptions struct {
	// LogLevel, if set, is applied to the business network chaincode logger.
	LogLevel string
}

// InstallOptions tune a business network install.
type InstallOptions struct{}

// Connection connects to the business networks started under one connection
// profile. It is safe for concurrent use.
type Connection struct {
	profile    Profile
	networkID  string
	identities IdentityManager
	registry   *chaincode.Registry
	newContext ContextFactory
	metrics    *Metrics
}

// NewConnection creates a connection to networkID under profile. An empty
// networkID connects to no business network, which is how networks are
// started. A nil context factory uses chaincode.NewContext and nil metrics
// are discarded.
func NewConnection(profile Profile, networkID string, identities IdentityManager, registry *chaincode.Registry, newContext ContextFactory, metrics *Metrics) *Connection {
	if newContext == nil {
		newContext = chaincode.NewContext
	}
	if metrics == nil {
		metrics = NewMetrics(&disabled.Provider{})
	}
	return &Connection{
		profile:    profile,
		networkID:  networkID,
		identities: identities,
		registry:   registry,
		newContext: newContext,
		metrics:    metrics,
	}
}

func (c *Connection) Profile() Profile { return c.profile }

func (c *Connection) NetworkID() string { return c.networkID }

// Login authenticates enrollmentID with secret. If the connection targets a
// business network the returned context is bound to it.
func (c *Connection) Login(enrollmentID, secret string) (*SecurityContext, error) {
	sc, err := c.login(enrollmentID, secret)
	c.metrics.Logins.With("profile", c.profile.Name, "success", strconv.FormatBool(err == nil)).Add(1)
	return sc, err
}

func (c *Connection) login(enrollmentID, secret string) (*SecurityContext, error) {
	id, err := c.identities.TestIdentity(enrollmentID, secret)
	if err != nil {
		logger.Debugf("Login of [%s] failed: %s", enrollmentID, err)
		return nil, err
	}

	sc := NewSecurityContext(id)
	if c.networkID == "" {
		return sc, nil
	}

	chaincodeID, ok := c.registry.GetBusinessNetwork(c.networkID, c.profile.Name)
	if !ok {
		return nil, NetworkNotFoundError{Network: c.networkID, Profile: c.profile.Name}
	}
	sc.Bind(c.networkID, chaincodeID)
	return sc, nil
}

// Start deploys networkID by calling init on its chaincode with the start
// transaction. A network already running under the profile keeps its
// instance and fails with NetworkAlreadyExistsError.
func (c *Connection) Start(sc *SecurityContext, networkID, startTransaction string, opts StartOptions) error {
	if sc == nil {
		return errors.New("a security context is required to start a business network")
	}
	if opts.LogLevel != "" && !flogging.IsValidLevel(opts.LogLevel) {
		return errors.Errorf("invalid log level [%s]", opts.LogLevel)
	}

	instance, created, err := c.registry.LaunchBusinessNetwork(networkID, c.profile.Name)
	if err != nil {
		return errors.WithMessagef(err, "failed to launch business network [%s]", networkID)
	}

	ctx, err := c.newContext(instance.Engine, sc.Identity(), c.connectionInfo(networkID))
	if err == nil {
		err = c.observe("init", func() error {
			return instance.Engine.Init(ctx, "init", []string{startTransaction})
		})
	}
	if err != nil {
		// The instance was initialized by a concurrent start; keep it bound.
		var engineErr *chaincode.EngineError
		if errors.As(err, &engineErr) && engineErr.AlreadyExists() {
			return NetworkAlreadyExistsError{Network: networkID}
		}
		if created {
			logger.Warnf("Removing business network [%s] after failed start: %s", networkID, err)
			c.registry.DeleteBusinessNetwork(networkID, c.profile.Name)
		}
		return err
	}

	if opts.LogLevel != "" {
		if err := flogging.Global.ActivateSpec(chaincodeLogSpec(flogging.Global.Spec(), opts.LogLevel)); err != nil {
			logger.Warnf("Failed to apply log level [%s] to business network [%s]: %s", opts.LogLevel, networkID, err)
		}
	}

	sc.Bind(networkID, instance.ID)
	logger.Infof("Started business network [%s] under connection profile [%s] as chaincode %s", networkID, c.profile.Name, instance.ID)
	return nil
}

// chaincodeLogSpec returns spec with the business network chaincode logger
// set to level, replacing any level previously set for it.
func chaincodeLogSpec(spec, level string) string {
	prefix := bnscc.ChaincodeName + "="
	var terms []string
	for _, term := range strings.Split(spec, ":") {
		if term != "" && !strings.HasPrefix(term, prefix) {
			terms = append(terms, term)
		}
	}
	return strings.Join(append(terms, prefix+level), ":")
}

// Undeploy removes networkID and its chaincode. Unknown networks are ignored.
func (c *Connection) Undeploy(sc *SecurityContext, networkID string) error {
	c.registry.DeleteBusinessNetwork(networkID, c.profile.Name)
	logger.Infof("Undeployed business network [%s] under connection profile [%s]", networkID, c.profile.Name)
	return nil
}

// Install does nothing; business networks need no install step.
func (c *Connection) Install(sc *SecurityContext, networkID string, opts InstallOptions) error {
	return nil
}

// Ping queries the bound business network for its status.
func (c *Connection) Ping(sc *SecurityContext) (map[string]interface{}, error) {
	raw, err := c.QueryChainCode(sc, bnscc.Ping, nil)
	if err != nil {
		return nil, err
	}
	result := map[string]interface{}{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrap(err, "invalid ping response")
	}
	return result, nil
}

// QueryChainCode calls fn on the bound chaincode without committing and
// returns the result serialized as JSON.
func (c *Connection) QueryChainCode(sc *SecurityContext, fn string, args []string) ([]byte, error) {
	var raw []byte
	err := c.observe("query", func() error {
		instance, ctx, err := c.resolve(sc)
		if err != nil {
			return err
		}
		result, err := instance.Engine.Query(ctx, fn, args)
		if err != nil {
			return err
		}
		raw, err = json.Marshal(result)
		return errors.Wrap(err, "failed to serialize query result")
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// InvokeChainCode calls fn on the bound chaincode. The result is discarded.
func (c *Connection) InvokeChainCode(sc *SecurityContext, fn string, args []string) error {
	return c.observe("invoke", func() error {
		instance, ctx, err := c.resolve(sc)
		if err != nil {
			return err
		}
		_, err = instance.Engine.Invoke(ctx, fn, args)
		return err
	})
}

// CreateTransactionID returns the empty string; callers generate their own
// transaction ids.
func (c *Connection) CreateTransactionID(sc *SecurityContext) (string, error) {
	return "", nil
}

func (c *Connection) resolve(sc *SecurityContext) (*chaincode.Instance, *chaincode.Context, error) {
	if sc == nil || sc.ChaincodeID() == "" {
		return nil, nil, chaincode.ChaincodeNotFoundError{}
	}
	instance, err := c.registry.GetChaincode(sc.ChaincodeID())
	if err != nil {
		return nil, nil, err
	}
	ctx, err := c.newContext(instance.Engine, sc.Identity(), c.connectionInfo(sc.Network()))
	if err != nil {
		return nil, nil, err
	}
	return instance, ctx, nil
}

func (c *Connection) connectionInfo(network string) chaincode.ConnectionInfo {
	return chaincode.ConnectionInfo{
		Profile: c.profile.Name,
		Network: network,
		MSPID:   c.profile.MSPID,
	}
}

func (c *Connection) observe(kind string, call func() error) error {
	startTime := time.Now()
	err := call()
	success := strconv.FormatBool(err == nil)
	c.metrics.DispatchRequests.With("type", kind, "success", success).Add(1)
	c.metrics.DispatchDuration.With("type", kind, "success", success).Observe(time.Since(startTime).Seconds())
	return err
}
