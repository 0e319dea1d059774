/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hyperledger/fabric-bnc/common/leveldbhelper"
	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/chaincode/inprocengine"
	"github.com/hyperledger/fabric-bnc/core/config"
	"github.com/hyperledger/fabric-bnc/core/connector"
	"github.com/hyperledger/fabric-bnc/core/container/inproccontroller"
	"github.com/hyperledger/fabric-bnc/core/identity"
	"github.com/hyperledger/fabric-bnc/core/scc/bnscc"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

var logger = flogging.MustGetLogger("cli.common")

var configFile string

// AddConfigFlag registers the --config flag on flags.
func AddConfigFlag(flags *pflag.FlagSet) {
	flags.StringVar(&configFile, "config", "", "path to bnpeer.yaml; defaults to searching $"+config.PathEnvVar+", . and /etc/hyperledger/bnpeer")
}

// LoadConfig loads the configuration named by --config and activates its
// logging settings.
func LoadConfig() (*config.TopLevel, error) {
	conf, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flogging.Init(flogging.Config{
		Format:  conf.Logging.Format,
		Writer:  os.Stderr,
		LogSpec: conf.Logging.Spec,
	})
	return conf, nil
}

// Peer holds the components shared by the bnpeer commands.
type Peer struct {
	Config      *config.TopLevel
	DBProvider  *leveldbhelper.Provider
	Containers  *inproccontroller.Registry
	Registry    *chaincode.Registry
	Connections *connector.Manager
}

// NewPeer opens the identity store and assembles the chaincode registry and
// connection manager for conf.
func NewPeer(conf *config.TopLevel, metricsProvider metrics.Provider) (*Peer, error) {
	dbPath := ""
	if conf.Peer.FileSystemPath != "" {
		dbPath = filepath.Join(conf.Peer.FileSystemPath, "identities")
	}
	dbProvider, err := leveldbhelper.NewProvider(&leveldbhelper.Conf{DBPath: dbPath})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to open identity store")
	}

	containers := inproccontroller.NewRegistry()
	if err := containers.Register(bnscc.ChaincodeName, bnscc.New()); err != nil {
		dbProvider.Close()
		return nil, err
	}
	registry := chaincode.NewRegistry(&inprocengine.Launcher{Containers: containers, ChaincodeName: bnscc.ChaincodeName}, metricsProvider)

	profiles := make([]connector.Profile, 0, len(conf.Profiles))
	for _, p := range conf.Profiles {
		profiles = append(profiles, connector.Profile{Name: p.Name, MSPID: p.MSPID})
	}

	return &Peer{
		Config:      conf,
		DBProvider:  dbProvider,
		Containers:  containers,
		Registry:    registry,
		Connections: connector.NewManager(profiles, registry, &identity.LevelDBCollections{Provider: dbProvider}, nil, metricsProvider),
	}, nil
}

// StartNetwork starts network as the admin of its connection profile. A
// network that is already running is left alone.
func (p *Peer) StartNetwork(network config.Network) error {
	conn, err := p.Connections.Connect(network.Profile, "")
	if err != nil {
		return err
	}
	sc, err := conn.Login(identity.AdminName, identity.AdminSecret)
	if err != nil {
		return errors.WithMessagef(err, "failed to log in to connection profile [%s]", network.Profile)
	}

	startTransaction, err := json.Marshal(&bnscc.StartTransaction{
		NetworkName:    network.Name,
		NetworkVersion: network.Version,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode start transaction")
	}

	err = conn.Start(sc, network.Name, string(startTransaction), connector.StartOptions{})
	if _, ok := err.(connector.NetworkAlreadyExistsError); ok {
		logger.Infof("Business network [%s] is already running under connection profile [%s]", network.Name, network.Profile)
		return nil
	}
	return err
}

// Close releases the identity store.
func (p *Peer) Close() {
	p.DBProvider.Close()
}
