/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package version

import (
	"fmt"
	"runtime"

	"github.com/hyperledger/fabric-bnc/common/metadata"
	"github.com/hyperledger/fabric-bnc/core/scc/bnscc"
	"github.com/spf13/cobra"
)

// Cmd returns the cobra command for Version
func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print bnpeer version.",
		Long:  `Print current version of the bnpeer server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			fmt.Fprint(cmd.OutOrStdout(), GetInfo())
			return nil
		},
	}
}

// GetInfo returns version information for the bnpeer
func GetInfo() string {
	return fmt.Sprintf("%s:\n Version: %s\n Commit SHA: %s\n Go version: %s\n OS/Arch: %s\n Chaincode: %s\n",
		metadata.ProgramName, metadata.Version, metadata.CommitSHA, runtime.Version(),
		fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH), bnscc.ChaincodeName)
}
