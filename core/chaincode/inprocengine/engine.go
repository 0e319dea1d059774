/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package inprocengine

import (
	"container/list"
	"encoding/json"
	"sync"

	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/container/inproccontroller"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var logger = flogging.MustGetLogger("inprocengine")

// Engine runs the chaincode of an in-process container against an in-memory
// world state. Calls are serialized. A call that fails leaves the state as
// it was, and queries never change it.
type Engine struct {
	container *inproccontroller.Container

	mutex sync.Mutex
	stub  *shimtest.MockStub
}

// New creates the engine for a container.
func New(c *inproccontroller.Container) *Engine {
	return &Engine{
		container: c,
		stub:      shimtest.NewMockStub(c.UUID(), c.Chaincode()),
	}
}

func (e *Engine) Init(ctx *chaincode.Context, fn string, args []string) error {
	_, err := e.execute(ctx, fn, args, func(txID string, a [][]byte) pb.Response {
		return e.stub.MockInit(txID, a)
	}, true)
	return err
}

func (e *Engine) Query(ctx *chaincode.Context, fn string, args []string) (interface{}, error) {
	return e.execute(ctx, fn, args, e.stub.MockInvoke, false)
}

func (e *Engine) Invoke(ctx *chaincode.Context, fn string, args []string) (interface{}, error) {
	return e.execute(ctx, fn, args, e.stub.MockInvoke, true)
}

func (e *Engine) execute(ctx *chaincode.Context, fn string, args []string, call func(string, [][]byte) pb.Response, commit bool) (interface{}, error) {
	if !e.container.Running() {
		return nil, errors.Errorf("container %s is not running", e.container.UUID())
	}

	creator, err := ctx.Creator()
	if err != nil {
		return nil, err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	snapshot := e.snapshot()
	e.stub.Creator = creator
	e.stub.ChannelID = ctx.Connection().Network

	resp := call(ctx.TxID(), toArgs(fn, args))

	if resp.Status >= shim.ERRORTHRESHOLD || !commit {
		e.restore(snapshot)
	}

	logger.With(
		zap.String("chaincode", e.container.UUID()),
		zap.String("function", fn),
		zap.String("txID", ctx.TxID()),
		zap.Int32("status", resp.Status),
	).Debug("Chaincode call completed")

	if resp.Status >= shim.ERRORTHRESHOLD {
		return nil, &chaincode.EngineError{Status: resp.Status, Message: resp.Message}
	}
	return decodePayload(resp.Payload), nil
}

type state struct {
	values map[string][]byte
	keys   []string
}

func (e *Engine) snapshot() state {
	s := state{values: make(map[string][]byte, len(e.stub.State))}
	for k, v := range e.stub.State {
		s.values[k] = v
	}
	for el := e.stub.Keys.Front(); el != nil; el = el.Next() {
		s.keys = append(s.keys, el.Value.(string))
	}
	return s
}

func (e *Engine) restore(s state) {
	e.stub.State = s.values
	e.stub.Keys = list.New()
	for _, k := range s.keys {
		e.stub.Keys.PushBack(k)
	}
}

func toArgs(fn string, args []string) [][]byte {
	out := make([][]byte, 0, len(args)+1)
	out = append(out, []byte(fn))
	for _, a := range args {
		out = append(out, []byte(a))
	}
	return out
}

// decodePayload returns the decoded JSON value of payload, or the payload as
// a string when it is not JSON.
func decodePayload(payload []byte) interface{} {
	if len(payload) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(payload, &v); err != nil {
		return string(payload)
	}
	return v
}

// Launcher creates in-process containers running one registered chaincode
// and the engines executing them.
type Launcher struct {
	Containers    *inproccontroller.Registry
	ChaincodeName string
}

func (l *Launcher) CreateContainer() (chaincode.Container, error) {
	c, err := l.Containers.NewContainer(l.ChaincodeName)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (l *Launcher) CreateEngine(c chaincode.Container) (chaincode.Engine, error) {
	ipc, ok := c.(*inproccontroller.Container)
	if !ok {
		return nil, errors.Errorf("container %s is not an in-process container", c.UUID())
	}
	return New(ipc), nil
}
