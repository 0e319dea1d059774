/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hyperledger/fabric-bnc/common/metadata"
	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/config"
	"github.com/hyperledger/fabric-bnc/core/operations"
	"github.com/hyperledger/fabric-bnc/core/operations/healthcheckers"
	"github.com/hyperledger/fabric-bnc/core/participation"
	"github.com/hyperledger/fabric-bnc/internal/bnpeer/common"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tedsuo/ifrit"
)

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Starts the node.",
		Long:  `Starts a node that hosts the configured business networks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true

			conf, err := common.LoadConfig()
			if err != nil {
				return err
			}
			return serve(conf)
		},
	}
}

// node is a running bnpeer: the shared peer components and the operations
// system serving them.
type node struct {
	peer    *common.Peer
	ops     *operations.System
	process ifrit.Process
}

func serve(conf *config.TopLevel) error {
	n, err := startNode(conf)
	if err != nil {
		return err
	}

	stop := make(chan struct{}, 1)
	shutdown := func() {
		select {
		case stop <- struct{}{}:
		default:
		}
	}
	handleSignals(addPlatformSignals(map[os.Signal]func(){
		syscall.SIGINT:  shutdown,
		syscall.SIGTERM: shutdown,
	}))

	logger.Infof("Started bnpeer with ID=[%s], operations address=[%s]", conf.Peer.ID, n.ops.Addr())

	select {
	case <-stop:
		return n.stop()
	case err := <-n.process.Wait():
		n.peer.Close()
		return errors.WithMessage(err, "operations system exited")
	}
}

func startNode(conf *config.TopLevel) (*node, error) {
	ops := newOperationsSystem(conf)

	peer, err := common.NewPeer(conf, ops.Provider)
	if err != nil {
		return nil, err
	}

	if err := ops.RegisterChecker("leveldb", peer.DBProvider); err != nil {
		peer.Close()
		return nil, err
	}
	expected := make([]chaincode.Binding, 0, len(conf.Networks))
	for _, network := range conf.Networks {
		expected = append(expected, chaincode.Binding{Network: network.Name, Profile: network.Profile})
	}
	if err := ops.RegisterReadinessChecker("networks", healthcheckers.NewNetworkChecker(peer.Registry, expected)); err != nil {
		peer.Close()
		return nil, err
	}
	if conf.Participation.Enabled {
		ops.RegisterHandler(participation.URLBaseV1, participation.NewHTTPHandler(true, peer.Registry), conf.Operations.TLS.Enabled)
	}

	process := ifrit.Invoke(ops)
	select {
	case err := <-process.Wait():
		peer.Close()
		return nil, errors.WithMessage(err, "failed to start operations system")
	default:
	}

	for _, network := range conf.Networks {
		if err := peer.StartNetwork(network); err != nil {
			logger.Errorf("Failed to start business network [%s] under connection profile [%s]: %s", network.Name, network.Profile, err)
			continue
		}
		logger.Infof("Started business network [%s] under connection profile [%s]", network.Name, network.Profile)
	}

	return &node{peer: peer, ops: ops, process: process}, nil
}

func (n *node) stop() error {
	defer n.peer.Close()
	n.process.Signal(syscall.SIGTERM)
	return <-n.process.Wait()
}

func newOperationsSystem(conf *config.TopLevel) *operations.System {
	return operations.NewSystem(operations.SystemOptions{
		Options: operations.Options{
			Logger:        flogging.MustGetLogger("bnpeer.operations"),
			ListenAddress: conf.Operations.ListenAddress,
			TLS: operations.TLS{
				Enabled:            conf.Operations.TLS.Enabled,
				CertFile:           conf.Operations.TLS.Cert.File,
				KeyFile:            conf.Operations.TLS.Key.File,
				ClientCertRequired: conf.Operations.TLS.ClientAuthRequired,
				ClientCACertFiles:  conf.Operations.TLS.ClientRootCAs.Files,
			},
		},
		Metrics: operations.MetricsOptions{
			Provider: conf.Metrics.Provider,
			Statsd: &operations.Statsd{
				Network:       conf.Metrics.Statsd.Network,
				Address:       conf.Metrics.Statsd.Address,
				WriteInterval: conf.Metrics.Statsd.WriteInterval,
				Prefix:        conf.Metrics.Statsd.Prefix,
			},
		},
		Version: metadata.Version,
	})
}

func handleSignals(handlers map[os.Signal]func()) {
	var signals []os.Signal
	for sig := range handlers {
		signals = append(signals, sig)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, signals...)

	go func() {
		for sig := range signalChan {
			logger.Infof("Received signal: %d (%s)", sig, sig)
			handlers[sig]()
		}
	}()
}
