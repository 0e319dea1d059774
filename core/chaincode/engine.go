/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"fmt"
	"strings"
)

//go:generate counterfeiter -o mock/container.go -fake-name Container . Container

// Container is an isolated runtime instance hosting one chaincode.
type Container interface {
	UUID() string
	Name() string
}

//go:generate counterfeiter -o mock/engine.go -fake-name Engine . Engine

// Engine executes chaincode functions inside a container. Failures reported
// by the chaincode itself are returned as *EngineError.
type Engine interface {
	Init(ctx *Context, fn string, args []string) error
	Query(ctx *Context, fn string, args []string) (interface{}, error)
	Invoke(ctx *Context, fn string, args []string) (interface{}, error)
}

//go:generate counterfeiter -o mock/launcher.go -fake-name Launcher . Launcher

// Launcher creates containers and the engines bound to them.
type Launcher interface {
	CreateContainer() (Container, error)
	CreateEngine(c Container) (Engine, error)
}

// Stopper is implemented by containers that release resources when their
// business network is removed.
type Stopper interface {
	Stop() error
}

// StatusConflict is the status a chaincode reports when the business network
// it is asked to create already exists.
const StatusConflict = 409

// EngineError is a failure response from a chaincode.
type EngineError struct {
	Status  int32
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("chaincode returned status %d: %s", e.Status, e.Message)
}

// AlreadyExists reports whether the chaincode refused to create something
// that exists. Engines that report conflicts with a generic status are
// recognized by their message.
func (e *EngineError) AlreadyExists() bool {
	return e.Status == StatusConflict || strings.Contains(e.Message, "already exists")
}
