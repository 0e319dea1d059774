/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bnscc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/golang/protobuf/proto"
	"github.com/hashicorp/go-version"
	"github.com/hyperledger/fabric-bnc/common/crypto"
	"github.com/hyperledger/fabric-bnc/common/crypto/certgen"
	"github.com/hyperledger/fabric-bnc/common/metadata"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-protos-go/msp"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("bnscc")

// ChaincodeName is the name the business network chaincode is registered under.
const ChaincodeName = "bnscc"

// Response statuses beyond the shim's OK and ERROR.
const (
	StatusBadRequest = 400
	StatusNotFound   = 404
	StatusConflict   = 409
)

// These are function names from Invoke first parameter
const (
	Init            = "init"
	Ping            = "ping"
	GetNetwork      = "getNetwork"
	AddResource     = "addResource"
	GetResource     = "getResource"
	UpdateResource  = "updateResource"
	DeleteResource  = "deleteResource"
	GetAllResources = "getAllResources"
	QueryResources  = "queryResources"
)

const (
	networkKey         = "network"
	resourceObjectType = "resource"
)

// StartTransaction is the payload a business network is started with.
type StartTransaction struct {
	NetworkName    string                 `json:"networkName"`
	NetworkVersion string                 `json:"networkVersion"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// Network is the record of the business network deployed in an instance.
type Network struct {
	Name       string                 `json:"name"`
	Version    string                 `json:"version"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	DeployedBy string                 `json:"deployedBy"`
	TxID       string                 `json:"txID"`
}

// PingResponse is returned by ping.
type PingResponse struct {
	Version  string `json:"version"`
	Identity string `json:"identity"`
	Network  string `json:"network"`
	// ExpiresAt is the expiry of the caller certificate.
	ExpiresAt time.Time `json:"expiresAt"`
}

// SCC runs one business network. Resources are JSON documents stored per
// registry.
type SCC struct{}

// New returns an instance of the business network chaincode.
func New() *SCC {
	return &SCC{}
}

func (s *SCC) Name() string { return ChaincodeName }

// Init deploys the business network described by the single start
// transaction argument. An instance deploys at most one network.
func (s *SCC) Init(stub shim.ChaincodeStubInterface) pb.Response {
	fname, params := stub.GetFunctionAndParameters()
	if fname != Init {
		return shim.Error(fmt.Sprintf("Requested init function %s not found.", fname))
	}
	if len(params) != 1 {
		return errorResponse(StatusBadRequest, "Incorrect number of arguments, %d", len(params))
	}

	existing, err := loadNetwork(stub)
	if err != nil {
		return shim.Error(err.Error())
	}
	if existing != nil {
		return errorResponse(StatusConflict, "business network %s already exists", existing.Name)
	}

	tx := &StartTransaction{}
	if err := json.Unmarshal([]byte(params[0]), tx); err != nil {
		return errorResponse(StatusBadRequest, "invalid start transaction: %s", err)
	}
	if tx.NetworkName == "" {
		return errorResponse(StatusBadRequest, "start transaction does not name a business network")
	}
	if _, err := version.NewSemver(tx.NetworkVersion); err != nil {
		return errorResponse(StatusBadRequest, "invalid version [%s] for business network %s: %s", tx.NetworkVersion, tx.NetworkName, err)
	}


	caller, err := callerIdentifier(stub)
	if err != nil {
		return errorResponse(StatusBadRequest, "%s", err)
	}

	network := &Network{
		Name:       tx.NetworkName,
		Version:    tx.NetworkVersion,
		Metadata:   tx.Metadata,
		DeployedBy: caller,
		TxID:       stub.GetTxID(),
	}
	raw, err := json.Marshal(network)
	if err != nil {
		return shim.Error(err.Error())
	}
	if err := stub.PutState(networkKey, raw); err != nil {
		return shim.Error(fmt.Sprintf("failed to store business network: %s", err))
	}

	logger.Infof("Business network %s@%s deployed by %s", network.Name, network.Version, caller)
	return shim.Success(raw)
}

// Invoke is called with args[0] containing the function name. Every function
// requires a deployed business network.
// # ping: returns a PingResponse
// # getNetwork: returns the deployed Network
// # addResource, updateResource: registry, id and JSON document in args[1..3]
// # getResource, deleteResource: registry and id in args[1..2]
// # getAllResources: returns every document of the registry in args[1]
// # queryResources: returns the documents of the registry in args[1] matching
//   the boolean expression in args[2]; the optional JSON object in args[3]
//   binds query parameters, referenced in the expression with a leading '_'
func (s *SCC) Invoke(stub shim.ChaincodeStubInterface) pb.Response {
	fname, params := stub.GetFunctionAndParameters()
	logger.Debugf("Invoke function: %s", fname)

	network, err := loadNetwork(stub)
	if err != nil {
		return shim.Error(err.Error())
	}
	if network == nil {
		return errorResponse(StatusNotFound, "no business network has been started")
	}

	switch fname {
	case Ping:
		return ping(stub, network)
	case GetNetwork:
		return jsonResponse(network)
	case AddResource:
		if len(params) != 3 {
			return errorResponse(StatusBadRequest, "Incorrect number of arguments, %d", len(params))
		}
		return putResource(stub, params[0], params[1], params[2], false)
	case UpdateResource:
		if len(params) != 3 {
			return errorResponse(StatusBadRequest, "Incorrect number of arguments, %d", len(params))
		}
		return putResource(stub, params[0], params[1], params[2], true)
	case GetResource:
		if len(params) != 2 {
			return errorResponse(StatusBadRequest, "Incorrect number of arguments, %d", len(params))
		}
		return getResource(stub, params[0], params[1])
	case DeleteResource:
		if len(params) != 2 {
			return errorResponse(StatusBadRequest, "Incorrect number of arguments, %d", len(params))
		}
		return deleteResource(stub, params[0], params[1])
	case GetAllResources:
		if len(params) != 1 {
			return errorResponse(StatusBadRequest, "Incorrect number of arguments, %d", len(params))
		}
		return getAllResources(stub, params[0])
	case QueryResources:
		if len(params) != 2 && len(params) != 3 {
			return errorResponse(StatusBadRequest, "Incorrect number of arguments, %d", len(params))
		}
		queryParams := "{}"
		if len(params) == 3 {
			queryParams = params[2]
		}
		return queryResources(stub, params[0], params[1], queryParams)
	}

	return shim.Error(fmt.Sprintf("Requested function %s not found.", fname))
}

func ping(stub shim.ChaincodeStubInterface, network *Network) pb.Response {
	creator, err := stub.GetCreator()
	if err != nil {
		return shim.Error(fmt.Sprintf("failed to get creator: %s", err))
	}
	caller, err := creatorIdentifier(creator)
	if err != nil {
		return errorResponse(StatusBadRequest, "%s", err)
	}
	return jsonResponse(&PingResponse{
		Version:   metadata.Version,
		Identity:  caller,
		Network:   network.Name,
		ExpiresAt: crypto.ExpiresAt(creator),
	})
}

func putResource(stub shim.ChaincodeStubInterface, registry, id, document string, update bool) pb.Response {
	if !json.Valid([]byte(document)) {
		return errorResponse(StatusBadRequest, "resource %s#%s is not valid JSON", registry, id)
	}
	key, err := stub.CreateCompositeKey(resourceObjectType, []string{registry, id})
	if err != nil {
		return errorResponse(StatusBadRequest, "%s", err)
	}

	existing, err := stub.GetState(key)
	if err != nil {
		return shim.Error(err.Error())
	}
	switch {
	case update && existing == nil:
		return errorResponse(StatusNotFound, "resource %s#%s does not exist", registry, id)
	case !update && existing != nil:
		return errorResponse(StatusConflict, "resource %s#%s already exists", registry, id)
	}

	if err := stub.PutState(key, []byte(document)); err != nil {
		return shim.Error(err.Error())
	}
	return shim.Success(nil)
}

func getResource(stub shim.ChaincodeStubInterface, registry, id string) pb.Response {
	key, err := stub.CreateCompositeKey(resourceObjectType, []string{registry, id})
	if err != nil {
		return errorResponse(StatusBadRequest, "%s", err)
	}
	document, err := stub.GetState(key)
	if err != nil {
		return shim.Error(err.Error())
	}
	if document == nil {
		return errorResponse(StatusNotFound, "resource %s#%s does not exist", registry, id)
	}
	return shim.Success(document)
}

func deleteResource(stub shim.ChaincodeStubInterface, registry, id string) pb.Response {
	key, err := stub.CreateCompositeKey(resourceObjectType, []string{registry, id})
	if err != nil {
		return errorResponse(StatusBadRequest, "%s", err)
	}
	existing, err := stub.GetState(key)
	if err != nil {
		return shim.Error(err.Error())
	}
	if existing == nil {
		return errorResponse(StatusNotFound, "resource %s#%s does not exist", registry, id)
	}
	if err := stub.DelState(key); err != nil {
		return shim.Error(err.Error())
	}
	return shim.Success(nil)
}

func getAllResources(stub shim.ChaincodeStubInterface, registry string) pb.Response {
	iter, err := stub.GetStateByPartialCompositeKey(resourceObjectType, []string{registry})
	if err != nil {
		return shim.Error(err.Error())
	}
	defer iter.Close()

	documents := []json.RawMessage{}
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return shim.Error(err.Error())
		}
		documents = append(documents, json.RawMessage(kv.Value))
	}
	return jsonResponse(documents)
}

func queryResources(stub shim.ChaincodeStubInterface, registry, expression, queryParams string) pb.Response {
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return errorResponse(StatusBadRequest, "invalid query [%s]: %s", expression, err)
	}
	bound := map[string]interface{}{}
	if err := json.Unmarshal([]byte(queryParams), &bound); err != nil {
		return errorResponse(StatusBadRequest, "invalid query parameters: %s", err)
	}

	iter, err := stub.GetStateByPartialCompositeKey(resourceObjectType, []string{registry})
	if err != nil {
		return shim.Error(err.Error())
	}
	defer iter.Close()

	documents := []json.RawMessage{}
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return shim.Error(err.Error())
		}

		fields := map[string]interface{}{}
		if err := json.Unmarshal(kv.Value, &fields); err != nil {
			logger.Debugf("Skipping non-object resource %s in query of registry %s", kv.Key, registry)
			continue
		}
		for name, value := range bound {
			fields["_"+name] = value
		}

		result, err := expr.Evaluate(fields)
		if err != nil {
			// a document lacking a referenced field does not match
			logger.Debugf("Query [%s] not applicable to resource %s: %s", expression, kv.Key, err)
			continue
		}
		match, ok := result.(bool)
		if !ok {
			return errorResponse(StatusBadRequest, "query [%s] does not evaluate to a boolean", expression)
		}
		if match {
			documents = append(documents, json.RawMessage(kv.Value))
		}
	}
	return jsonResponse(documents)
}

func loadNetwork(stub shim.ChaincodeStubInterface) (*Network, error) {
	raw, err := stub.GetState(networkKey)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read business network")
	}
	if raw == nil {
		return nil, nil
	}
	network := &Network{}
	if err := json.Unmarshal(raw, network); err != nil {
		return nil, errors.Wrap(err, "corrupt business network record")
	}
	return network, nil
}

// callerIdentifier returns the identifier of the certificate the caller
// signed with.
func callerIdentifier(stub shim.ChaincodeStubInterface) (string, error) {
	creator, err := stub.GetCreator()
	if err != nil {
		return "", errors.WithMessage(err, "failed to get creator")
	}
	return creatorIdentifier(creator)
}

func creatorIdentifier(creator []byte) (string, error) {
	sid := &msp.SerializedIdentity{}
	if err := proto.Unmarshal(creator, sid); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal creator")
	}
	cert, err := certgen.ParseCertificate(sid.IdBytes)
	if err != nil {
		return "", errors.WithMessage(err, "invalid creator")
	}
	return cert.Identifier(), nil
}

func jsonResponse(v interface{}) pb.Response {
	raw, err := json.Marshal(v)
	if err != nil {
		return shim.Error(err.Error())
	}
	return shim.Success(raw)
}

func errorResponse(status int32, format string, args ...interface{}) pb.Response {
	return pb.Response{Status: status, Message: fmt.Sprintf(format, args...)}
}
