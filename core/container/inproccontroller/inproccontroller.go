/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package inproccontroller

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-uuid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
)

var inprocLogger = flogging.MustGetLogger("inproccontroller")

// SysCCRegisteredErr is returned when a chaincode name is registered twice.
type SysCCRegisteredErr string

func (s SysCCRegisteredErr) Error() string {
	return fmt.Sprintf("%s already registered", string(s))
}

// NotRegisteredErr is returned when a container is requested for a chaincode
// that was never registered.
type NotRegisteredErr string

func (s NotRegisteredErr) Error() string {
	return fmt.Sprintf("%s not registered", string(s))
}

// Registry stores registered chaincodes and the containers running them.
type Registry struct {
	mutex        sync.Mutex
	typeRegistry map[string]shim.Chaincode
	instRegistry map[string]*Container
}

// NewRegistry creates an initialized registry, ready to register chaincodes.
func NewRegistry() *Registry {
	return &Registry{
		typeRegistry: make(map[string]shim.Chaincode),
		instRegistry: make(map[string]*Container),
	}
}

// Register makes cc available under name. Containers are created from it
// with NewContainer.
func (r *Registry) Register(name string, cc shim.Chaincode) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	inprocLogger.Debugf("Registering chaincode: %s", name)
	if _, ok := r.typeRegistry[name]; ok {
		return SysCCRegisteredErr(name)
	}
	r.typeRegistry[name] = cc
	return nil
}

// NewContainer starts a fresh container running the chaincode registered
// under name. Every container gets a unique id.
func (r *Registry) NewContainer(name string) (*Container, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cc, ok := r.typeRegistry[name]
	if !ok {
		return nil, NotRegisteredErr(name)
	}

	id, err := uuid.GenerateUUID()
	if err != nil {
		return nil, errors.Wrapf(err, "could not create instance for %s", name)
	}

	c := &Container{
		id:        id,
		name:      name,
		chaincode: cc,
		registry:  r,
		running:   true,
	}
	r.instRegistry[id] = c
	inprocLogger.Debugf("chaincode instance %s created for %s", id, name)
	return c, nil
}

// Container returns the running container with the given id.
func (r *Registry) Container(id string) (*Container, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	c, ok := r.instRegistry[id]
	return c, ok
}

// Containers returns the number of running containers.
func (r *Registry) Containers() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.instRegistry)
}

func (r *Registry) stop(c *Container) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !c.running {
		return errors.Errorf("%s not running", c.id)
	}
	c.running = false
	delete(r.instRegistry, c.id)
	inprocLogger.Debugf("chaincode instance %s stopped", c.id)
	return nil
}

// Container is one in-process instance of a registered chaincode.
type Container struct {
	id        string
	name      string
	chaincode shim.Chaincode
	registry  *Registry
	running   bool
}

// UUID returns the unique id of the container.
func (c *Container) UUID() string { return c.id }

// Name returns the name of the chaincode the container runs.
func (c *Container) Name() string { return c.name }

// Chaincode returns the chaincode the container runs.
func (c *Container) Chaincode() shim.Chaincode { return c.chaincode }

// Running reports whether the container has not been stopped.
func (c *Container) Running() bool {
	c.registry.mutex.Lock()
	defer c.registry.mutex.Unlock()
	return c.running
}

// Stop removes the container from its registry. Stopping twice is an error.
func (c *Container) Stop() error {
	return c.registry.stop(c)
}
