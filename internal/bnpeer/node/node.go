/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"github.com/hyperledger/fabric-bnc/internal/bnpeer/common"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/spf13/cobra"
)

const nodeFuncName = "node"

var logger = flogging.MustGetLogger("nodeCmd")

// Cmd returns the cobra command for Node
func Cmd() *cobra.Command {
	nodeCmd := &cobra.Command{
		Use:   nodeFuncName,
		Short: "Operate a business network peer: start.",
		Long:  "Operate a business network peer: start.",
	}
	common.AddConfigFlag(nodeCmd.PersistentFlags())
	nodeCmd.AddCommand(startCmd())
	return nodeCmd
}
