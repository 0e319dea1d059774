//go:build !windows
// +build !windows

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"bytes"
	"os"
	"runtime/pprof"
	"syscall"
)

func addPlatformSignals(sigs map[os.Signal]func()) map[os.Signal]func() {
	sigs[syscall.SIGUSR1] = logGoRoutines
	return sigs
}

func logGoRoutines() {
	buf := &bytes.Buffer{}
	if err := pprof.Lookup("goroutine").WriteTo(buf, 2); err != nil {
		logger.Errorf("failed to collect goroutines: %s", err)
		return
	}
	logger.Named("diag").Infof("Go routines report:\n%s", buf.String())
}
