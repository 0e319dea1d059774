/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"github.com/golang/protobuf/proto"
	"github.com/hashicorp/go-uuid"
	"github.com/hyperledger/fabric-bnc/core/identity"
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/pkg/errors"
)

// ConnectionInfo describes the connection a call arrives on.
type ConnectionInfo struct {
	Profile string
	Network string
	MSPID   string
}

// IdentityService exposes the identity a call is made with.
type IdentityService interface {
	Identifier() string
	Name() string
	Issuer() string
	Certificate() []byte
}

type identityService struct {
	identity *identity.Identity
}

func (s identityService) Identifier() string  { return s.identity.Identifier }
func (s identityService) Name() string        { return s.identity.Name }
func (s identityService) Issuer() string      { return s.identity.Issuer }
func (s identityService) Certificate() []byte { return []byte(s.identity.Certificate) }

// Context is the execution context of a single chaincode call. A context is
// never reused across calls.
type Context struct {
	engine     Engine
	identity   *identity.Identity
	connection ConnectionInfo
	txID       string
}

// NewContext builds the context for one call to engine made by id.
func NewContext(engine Engine, id *identity.Identity, connection ConnectionInfo) (*Context, error) {
	if id == nil {
		return nil, errors.New("an identity is required to build an execution context")
	}
	txID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate transaction id")
	}
	return &Context{
		engine:     engine,
		identity:   id,
		connection: connection,
		txID:       txID,
	}, nil
}

func (c *Context) Engine() Engine { return c.engine }

func (c *Context) IdentityService() IdentityService { return identityService{identity: c.identity} }

func (c *Context) Connection() ConnectionInfo { return c.connection }

// TxID returns the transaction id assigned to the call.
func (c *Context) TxID() string { return c.txID }

// Creator returns the serialized identity of the caller as presented to the
// chaincode.
func (c *Context) Creator() ([]byte, error) {
	creator, err := proto.Marshal(&msp.SerializedIdentity{
		Mspid:   c.connection.MSPID,
		IdBytes: []byte(c.identity.Certificate),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal creator")
	}
	return creator, nil
}
